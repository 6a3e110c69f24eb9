package adapter

import "github.com/mmcdole/snapfeed/internal/domain"

var _ domain.KeySource = StaticKeySource("")

// StaticKeySource serves a fixed access key, usually the one from the config file.
type StaticKeySource string

func (k StaticKeySource) AccessKey() string {
	return string(k)
}

// KeySourceFromConfig returns the key source backed by cfg
func KeySourceFromConfig(cfg *Config) StaticKeySource {
	return StaticKeySource(cfg.API.AccessKey)
}
