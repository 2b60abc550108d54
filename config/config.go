package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the complete tool configuration.
type Config struct {
	Check   CheckConfig   `toml:"check"`
	Log     LogConfig     `toml:"log"`
	Server  ServerConfig  `toml:"server"`
	History HistoryConfig `toml:"history"`
}

// CheckConfig holds analysis thresholds and file conventions.
type CheckConfig struct {
	// MaxTravel is the advisory coordinate magnitude limit in mm.
	MaxTravel float64 `toml:"max_travel"`

	// MaxFeed is the advisory feed rate limit in mm/min.
	MaxFeed float64 `toml:"max_feed"`

	// Extensions lists file extensions accepted without a format
	// advisory warning.
	Extensions []string `toml:"extensions"`

	// Candidates lists subprogram file name templates, tried in
	// order. Each template takes the program number once.
	Candidates []string `toml:"candidates"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// ServerConfig holds settings for serve mode.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	DataDir string `toml:"data_dir"`
}

// HistoryConfig holds the run history store settings.
type HistoryConfig struct {
	// Path is the sqlite database file. Empty disables history.
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a TOML configuration file and fills in defaults for
// anything it leaves unset.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads the first config file found: $GCHECK_CONFIG,
// ./gcheck.toml, then ~/.config/gcheck/config.toml. With no file
// anywhere it returns Default; a checker should not require setup.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("GCHECK_CONFIG"); path != "" {
		return Load(path)
	}
	paths := []string{"gcheck.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gcheck", "config.toml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Check.MaxTravel == 0 {
		c.Check.MaxTravel = 1000
	}
	if c.Check.MaxFeed == 0 {
		c.Check.MaxFeed = 10000
	}
	if len(c.Check.Extensions) == 0 {
		c.Check.Extensions = []string{".nc", ".txt", ".gcode", ".cnc"}
	}
	if len(c.Check.Candidates) == 0 {
		c.Check.Candidates = []string{"O%d.txt", "O%d.nc", "o%d.txt", "o%d.nc", "%d.txt", "%d.nc"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "."
	}
}

// Validate reports the first problem with the configuration.
func (c *Config) Validate() error {
	if c.Check.MaxTravel <= 0 {
		return fmt.Errorf("check.max_travel must be positive, got %v", c.Check.MaxTravel)
	}
	if c.Check.MaxFeed <= 0 {
		return fmt.Errorf("check.max_feed must be positive, got %v", c.Check.MaxFeed)
	}
	for _, ext := range c.Check.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("check.extensions entry %q must start with a dot", ext)
		}
	}
	for _, tpl := range c.Check.Candidates {
		if strings.Count(tpl, "%d") != 1 {
			return fmt.Errorf("check.candidates template %q must contain %%d exactly once", tpl)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	return nil
}
