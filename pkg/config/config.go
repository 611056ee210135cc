// Package config loads gv settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, config file, GV_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/kraitsura/groups_viewer/pkg/filter"
	"github.com/kraitsura/groups_viewer/pkg/loader"
)

// FilterConfig is the initial filter used by non-interactive commands
type FilterConfig struct {
	Privacy string `yaml:"privacy" env:"GV_PRIVACY"`
	Color   string `yaml:"color" env:"GV_COLOR"`
	Friends bool   `yaml:"friends" env:"GV_FRIENDS"`
}

// Config holds every tunable setting
type Config struct {
	Source      string        `yaml:"source" env:"GV_SOURCE"`
	Delay       time.Duration `yaml:"delay" env:"GV_DELAY"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"GV_HTTP_TIMEOUT"`
	LogFile     string        `yaml:"log_file" env:"GV_LOG_FILE"`
	LogLevel    string        `yaml:"log_level" env:"GV_LOG_LEVEL"`
	Addr        string        `yaml:"addr" env:"GV_ADDR"`
	Filter      FilterConfig  `yaml:"filter"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Source:      loader.SchemeFixture,
		Delay:       loader.DefaultFixtureDelay,
		HTTPTimeout: loader.DefaultHTTPTimeout,
		LogFile:     filepath.Join(os.TempDir(), "gv.log"),
		LogLevel:    "info",
		Addr:        "localhost:9000",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gv/config.yaml (or the platform
// equivalent), or "" if no config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gv", "config.yaml")
}

// Load reads the config file at path and applies environment overrides.
// An empty path means DefaultPath, which may be missing.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			// no config file is fine
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	// env v3 does not descend into nested structs
	for _, target := range []interface{}{&cfg, &cfg.Filter} {
		if err := env.Parse(target); err != nil {
			return cfg, fmt.Errorf("parse environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks enumerated and bounded fields
func (c Config) Validate() error {
	if _, err := filter.ParsePrivacy(c.Filter.Privacy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if c.Delay < 0 {
		return fmt.Errorf("config: delay cannot be negative (%s)", c.Delay)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("config: http_timeout cannot be negative (%s)", c.HTTPTimeout)
	}
	return nil
}

// FilterState converts the configured filter into a filter.State.
// Validate has already rejected a bad privacy value.
func (c Config) FilterState() filter.State {
	p, _ := filter.ParsePrivacy(c.Filter.Privacy)
	return filter.State{
		Privacy:     p,
		Color:       c.Filter.Color,
		FriendsOnly: c.Filter.Friends,
	}
}

// LoaderOptions returns the source tuning for loader.Open. A zero delay in
// the config means "no wait", which the fixture source spells as negative.
func (c Config) LoaderOptions() loader.Options {
	delay := c.Delay
	if delay == 0 {
		delay = -1
	}
	return loader.Options{Delay: delay, HTTPTimeout: c.HTTPTimeout}
}
