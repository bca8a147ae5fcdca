// Package config loads the configuration of the handy service from a YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/birdie-ai/handy/slog"
	"gopkg.in/yaml.v3"
)

// Default configurations
const (
	DefaultListen         = "127.0.0.1:8080"
	DefaultTimezone       = "Local"
	DefaultShutdownPeriod = 10 * time.Second
)

// EnvPrefix prefixes every environment variable read by [LoadEnv].
const EnvPrefix = "HANDY"

type (
	// Config is the top-level service configuration.
	Config struct {
		// Listen is the HTTP listen address.
		Listen string `yaml:"listen"`
		// Timezone is the IANA timezone of local mode datetimes, like "America/Los_Angeles".
		// "Local" uses the zone of the host.
		Timezone string `yaml:"timezone"`
		// ShutdownPeriod is how long the server waits for in-flight requests when stopping.
		ShutdownPeriod time.Duration `yaml:"shutdown_period"`
		Log            Log           `yaml:"log"`
	}

	// Log is the logging configuration, see [slog.ParseLevel] and [slog.ParseFormat].
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	}
)

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills in missing/zero values with defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.ShutdownPeriod <= 0 {
		c.ShutdownPeriod = DefaultShutdownPeriod
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = string(slog.DefaultFormat)
	}
}

// Validate checks that the timezone and log settings can be used.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	_, err := c.SlogConfig()
	return err
}

// Location loads the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogConfig parses the log configuration.
func (c *Config) SlogConfig() (slog.Config, error) {
	cfg, err := slog.ParseConfig(c.Log.Level, c.Log.Format)
	if err != nil {
		return slog.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadEnv overrides c with the environment variables that are set:
// HANDY_LISTEN, HANDY_TIMEZONE, HANDY_SHUTDOWN_PERIOD, HANDY_LOG_LEVEL and HANDY_LOG_FMT.
func (c *Config) LoadEnv() error {
	if v := os.Getenv(EnvPrefix + "_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvPrefix + "_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvPrefix + "_SHUTDOWN_PERIOD"); v != "" {
		period, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: parsing %s_SHUTDOWN_PERIOD: %w", EnvPrefix, err)
		}
		c.ShutdownPeriod = period
	}
	if v := os.Getenv(slog.LevelEnv(EnvPrefix)); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(slog.FormatEnv(EnvPrefix)); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Load loads the configuration from the YAML file on path, then applies [Config.LoadEnv].
// An empty path or a missing file gives the default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			slog.Debug("config file not found, using defaults", "path", path)
		case err != nil:
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %q: %w", path, err)
			}
		}
	}

	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML on path, creating its parent directory if needed.
// The file is written on a temporary file first and then renamed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	if cfg == nil {
		return errors.New("config: config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: creating dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".handy-config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("config: writing: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: closing: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("config: renaming: %w", err)
	}
	return nil
}
