package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port" validate:"omitempty,numeric"`
	Mode string `toml:"mode" validate:"omitempty,oneof=debug release test"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" validate:"required"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LoggingConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	Logging  LoggingConfig  `toml:"logging"`
}

// Default is the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: "release"},
		Memgraph: MemgraphConfig{URI: "bolt://localhost:7687"},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// Load reads a TOML config file on top of the defaults and validates the
// result. The returned error wraps os.ErrNotExist when the file is missing,
// so callers can fall back to Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
