// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Database Database `toml:"database"`
	Metadata Metadata `toml:"metadata"`
	Matching Matching `toml:"matching"`
	Library  Library  `toml:"library"`
	Log      Log      `toml:"log"`
}

type Database struct {
	Path string `toml:"path"`
}

type Metadata struct {
	// BaseURL overrides the epguides endpoint, mainly for testing.
	BaseURL string `toml:"base_url"`

	// AutoRefresh refreshes stale episode data on read instead of only
	// on explicit user request.
	AutoRefresh bool `toml:"auto_refresh"`

	// StaleAfterDays is the advisory staleness horizon.
	StaleAfterDays int `toml:"stale_after_days"`
}

type Matching struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	AmbiguityMargin     float64 `toml:"ambiguity_margin"`
}

type Library struct {
	// Naming is the destination filename template.
	Naming string `toml:"naming"`
}

type Log struct {
	Level string `toml:"level"`
}

// Load reads and parses the configuration file. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/renamarr.db"
	}
	if cfg.Metadata.StaleAfterDays == 0 {
		cfg.Metadata.StaleAfterDays = 7
	}
	if cfg.Matching.SimilarityThreshold == 0 {
		cfg.Matching.SimilarityThreshold = 0.75
	}
	if cfg.Matching.AmbiguityMargin == 0 {
		cfg.Matching.AmbiguityMargin = 0.05
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
