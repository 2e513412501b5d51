// Package config loads portal settings from an optional YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "acervo.yaml"

// Adapter names.
const (
	AdapterFS     = "fs"
	AdapterMemory = "memory"
)

// Config holds the portal settings. Environment variables override YAML.
type Config struct {
	// DataDir is the vault directory of the fs adapter.
	DataDir string `yaml:"data_dir" env:"ACERVO_DATA_DIR" env-default:".acervo"`
	// StorageKey is the durable key the collection is stored under.
	StorageKey string `yaml:"storage_key" env:"ACERVO_STORAGE_KEY" env-default:"bdg_inova_plus_v2"`
	Adapter    string `yaml:"adapter" env:"ACERVO_ADAPTER" env-default:"fs"`
	ReadOnly   bool   `yaml:"read_only" env:"ACERVO_READ_ONLY" env-default:"false"`
	// Watch reloads the collection when another session overwrites it.
	// Defaults to true; set before reading since cleanenv would apply an
	// env-default over an explicit false.
	Watch bool `yaml:"watch" env:"ACERVO_WATCH"`
}

// Load reads path, falling back to the environment alone when path is empty
// or does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{Watch: true}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
			return cfg, cfg.validate()
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Adapter {
	case AdapterFS, AdapterMemory:
	default:
		return fmt.Errorf("unknown adapter %q (want %s or %s)", c.Adapter, AdapterFS, AdapterMemory)
	}
	if c.StorageKey == "" {
		return errors.New("storage_key must not be empty")
	}
	return nil
}
