// Package config handles TOML configuration loading for netlistgen.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is netlistgen's top-level configuration, loadable from a TOML
// file via Load, and overridable field-by-field from CLI flags.
type Config struct {
	Gen     GenConfig     `toml:"gen"`
	Logging LoggingConfig `toml:"logging"`
}

// GenConfig controls the synthetic hierarchy the generator builds.
type GenConfig struct {
	Mode           string  `toml:"mode"` // "chain" or "random"
	ChainDepth     int     `toml:"chain_depth"`
	ChainFanOut    int     `toml:"chain_fan_out"`
	Seed           uint64  `toml:"seed"`
	Steps          int     `toml:"steps"`
	CreateProb     float64 `toml:"create_prob"`
	DestroyProb    float64 `toml:"destroy_prob"`
	ConnectProb    float64 `toml:"connect_prob"`
	DisconnectProb float64 `toml:"disconnect_prob"`
	MaxModules     int     `toml:"max_modules"`
}

// LoggingConfig controls the zap logger netlistgen builds.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	JSON  bool   `toml:"json"`
}

// Default returns netlistgen's built-in configuration, used when no config
// file is given.
func Default() Config {
	return Config{
		Gen: GenConfig{
			Mode:           "chain",
			ChainDepth:     8,
			ChainFanOut:    2,
			Seed:           1,
			Steps:          1000,
			CreateProb:     0.35,
			DestroyProb:    0.15,
			ConnectProb:    0.35,
			DisconnectProb: 0.15,
			MaxModules:     64,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads and decodes a TOML config file, starting from Default so an
// incomplete file only overrides the fields it names.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}
