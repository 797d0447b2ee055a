// Package config loads and validates the judging core's TOML
// configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig controls the TCP request multiplexer and worker pool.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MaxThreads  int    `toml:"max_threads"`
	MaxQueue    int    `toml:"max_queue"`
	MetricsAddr string `toml:"metrics_addr"`
}

// LanguagesConfig controls the language registry and test-case loader.
type LanguagesConfig struct {
	Enabled      bool     `toml:"enabled"`
	Supported    []string `toml:"supported"`
	TempDir      string   `toml:"temp_dir"`
	TestCasesDir string   `toml:"test_cases_dir"`
}

// Config is the top-level judge.toml schema.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Languages LanguagesConfig `toml:"languages"`
}

const defaultMaxThreads = 4

// Load reads and parses the TOML file at path, applies defaults, and
// validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.MaxThreads <= 0 {
		c.Server.MaxThreads = defaultMaxThreads
	}
	if c.Server.MaxQueue < 0 {
		c.Server.MaxQueue = 0
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Languages.Enabled {
		if c.Languages.TempDir == "" {
			return fmt.Errorf("languages.temp_dir is required when languages.enabled is true")
		}
		if c.Languages.TestCasesDir == "" {
			return fmt.Errorf("languages.test_cases_dir is required when languages.enabled is true")
		}
	}
	return nil
}

// Addr returns the "host:port" string the request multiplexer binds to.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
