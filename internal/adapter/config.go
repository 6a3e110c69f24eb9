package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "https://api.unsplash.com"
	DefaultPerPage = 10
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds remote photo API configuration
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	AccessKey         string        `mapstructure:"access_key"`
	PerPage           int           `mapstructure:"per_page"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables limiting
}

// CacheConfig holds local image store configuration
type CacheConfig struct {
	Dir        string `mapstructure:"dir"`
	MemoryOnly bool   `mapstructure:"memory_only"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns   int           `mapstructure:"grid_columns"`
	BannerTimeout time.Duration `mapstructure:"banner_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           DefaultBaseURL,
			PerPage:           DefaultPerPage,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		UI: UIConfig{
			GridColumns:   3,
			BannerTimeout: 4 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

var envKeyReplacer = strings.NewReplacer(".", "_")

// bindEnvKeys registers every config key so AutomaticEnv can override values
// that are absent from the config file.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"api.base_url", "api.access_key", "api.per_page", "api.timeout", "api.requests_per_second",
		"cache.dir", "cache.memory_only",
		"ui.grid_columns", "ui.banner_timeout",
		"logging.file", "logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "snapfeed", "snapfeed.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "snapfeed", "snapfeed.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "snapfeed")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "snapfeed")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "snapfeed", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "snapfeed", "cache")
	}
}

// LoadConfig loads configuration from the default locations and environment.
// An explicit path overrides the search locations.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.GetViper(), path)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (SNAPFEED_API_ACCESS_KEY etc.)
	v.SetEnvPrefix("SNAPFEED")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.API.PerPage <= 0 {
		cfg.API.PerPage = DefaultPerPage
	}
	if cfg.UI.GridColumns <= 0 {
		cfg.UI.GridColumns = 1
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.access_key", cfg.API.AccessKey)
	v.Set("api.per_page", cfg.API.PerPage)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.requests_per_second", cfg.API.RequestsPerSecond)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.memory_only", cfg.Cache.MemoryOnly)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.banner_timeout", cfg.UI.BannerTimeout.String())

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveAccessKey updates just the access key in the configuration
func SaveAccessKey(key string) error {
	viper.Set("api.access_key", key)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an access key is set
func (c *Config) IsConfigured() bool {
	return c.API.AccessKey != ""
}

// CachePath returns the directory the image store should use, or "" for memory-only mode
func (c *Config) CachePath() string {
	if c.Cache.MemoryOnly {
		return ""
	}
	return c.Cache.Dir
}

// ClearCache removes all cached data under dir
func ClearCache(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the default cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
