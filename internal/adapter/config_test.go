package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  access_key: abc\n"), 0600))

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.API.AccessKey)
	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, DefaultPerPage, cfg.API.PerPage)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.UI.GridColumns)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfig_FileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `api:
  base_url: http://localhost:9999
  per_page: 30
  timeout: 5s
  requests_per_second: 0
cache:
  memory_only: true
ui:
  grid_columns: 0
  banner_timeout: 1s
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.PerPage)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RequestsPerSecond)
	assert.Empty(t, cfg.CachePath())
	assert.Equal(t, 1, cfg.UI.GridColumns, "non-positive columns fall back to one")
	assert.Equal(t, time.Second, cfg.UI.BannerTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SNAPFEED_API_ACCESS_KEY", "from-env")
	t.Setenv("SNAPFEED_API_PER_PAGE", "20")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  access_key: from-file\n"), 0600))

	cfg, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.AccessKey)
	assert.Equal(t, 20, cfg.API.PerPage)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.AccessKey = "saved"
	cfg.API.PerPage = 15
	cfg.UI.BannerTimeout = 2 * time.Second
	require.NoError(t, saveConfig(viper.New(), cfg, dir))

	loaded, err := loadConfig(viper.New(), filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.API.AccessKey)
	assert.Equal(t, 15, loaded.API.PerPage)
	assert.Equal(t, 2*time.Second, loaded.UI.BannerTimeout)
}

func TestStaticKeySource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.AccessKey = "k"
	assert.Equal(t, "k", KeySourceFromConfig(cfg).AccessKey())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "INFO", parseLogLevel("nonsense").String())
}
