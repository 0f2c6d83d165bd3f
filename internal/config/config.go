// Package config loads the daemon's YAML configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration, distinct from the user settings
// document the stores manage: this file configures the process, the settings
// document configures behavior the UI owns.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	History HistoryConfig `yaml:"history"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	PathPrefix string `yaml:"path_prefix"`
	Token      string `yaml:"token"`
}

// StorageConfig overrides where the JSON documents live.
type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// HistoryConfig configures the run-history database.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Load reads the config file at path, falling back to defaults for anything
// unset. An empty path yields pure defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	setDefaults(&cfg)

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		// The daemon serves the local desktop shell, not the network.
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7291
	}
}
