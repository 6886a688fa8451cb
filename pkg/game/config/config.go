// Package config loads Secret Code settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SECRETCODE_"

// Front-ends
const (
	FrontendTerminal = "tui"
	FrontendWindow   = "window"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all Secret Code configuration.
type Config struct {
	Locale    string `yaml:"locale" env:"LOCALE"`
	LocaleDir string `yaml:"locale_dir" env:"LOCALE_DIR"`

	// Frontend is tui or window.
	Frontend string `yaml:"frontend" env:"FRONTEND"`

	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`

	// Passcode divides the bonus checksum. When zero, the code parameter
	// of Query is used instead.
	Passcode int    `yaml:"passcode" env:"PASSCODE"`
	Query    string `yaml:"query" env:"QUERY"`

	Tick      time.Duration `yaml:"tick" env:"TICK"`
	Countdown time.Duration `yaml:"countdown" env:"COUNTDOWN"`

	// Bindings rebinds actions by name, e.g. {"Hint": "f2"}. In the
	// environment: SECRETCODE_BINDINGS=Hint:f2,Back:tab
	Bindings map[string]string `yaml:"bindings" env:"BINDINGS"`

	Log LogConfig `yaml:"log" envPrefix:"LOG_"`
}

// StorageConfig selects the progress backend.
type StorageConfig struct {
	// Driver is memory, file or sqlite.
	Driver string `yaml:"driver" env:"DRIVER"`
	Path   string `yaml:"path" env:"PATH"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
	File  string `yaml:"file" env:"FILE"`
}

// Default returns a configuration that runs out of the box.
func Default() *Config {
	return &Config{
		Locale:    "en_GB",
		LocaleDir: "locales",
		Frontend:  FrontendTerminal,
		Storage: StorageConfig{
			Driver: "file",
			Path:   "save",
		},
		Tick:      100 * time.Millisecond,
		Countdown: 20 * time.Second,
		Log: LogConfig{
			Level: "info",
			File:  "secretcode.log",
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerations and durations.
func (c *Config) Validate() error {
	switch c.Frontend {
	case FrontendTerminal, FrontendWindow:
	default:
		return fmt.Errorf("%w: frontend %q", ErrInvalid, c.Frontend)
	}
	switch c.Storage.Driver {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("%w: storage driver %q", ErrInvalid, c.Storage.Driver)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("%w: tick %v", ErrInvalid, c.Tick)
	}
	if c.Countdown <= 0 {
		return fmt.Errorf("%w: countdown %v", ErrInvalid, c.Countdown)
	}
	if c.Passcode < 0 {
		return fmt.Errorf("%w: passcode %d", ErrInvalid, c.Passcode)
	}
	return nil
}

// ResolvePasscode returns Passcode, or the code parameter of Query such as
// "?code=28". It returns 0 when neither holds a number.
func (c *Config) ResolvePasscode() int {
	if c.Passcode > 0 {
		return c.Passcode
	}
	q, err := url.ParseQuery(strings.TrimPrefix(c.Query, "?"))
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(q.Get("code"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
