// Package config loads daemon configuration from an optional TOML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type StorageConfig struct {
	Prefix string `toml:"prefix"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a configuration that works with no file present.
func Default() Config {
	return Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Database: DatabaseConfig{Path: "satpocket.db"},
		Storage:  StorageConfig{Prefix: "satoshi_"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// SATPOCKET_* environment overrides. A missing file is not an error;
// a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SATPOCKET_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SATPOCKET_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SATPOCKET_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SATPOCKET_STORAGE_PREFIX"); v != "" {
		cfg.Storage.Prefix = v
	}
	if v := os.Getenv("SATPOCKET_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
