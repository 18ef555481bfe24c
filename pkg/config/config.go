// Package config loads procmon settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the CLI flags. Zero values mean "unset".
type Config struct {
	Root         string        `yaml:"root"`
	Interval     time.Duration `yaml:"interval"`
	Samples      int           `yaml:"samples"`
	TaskCapacity int           `yaml:"task_capacity"`
	TaskRows     int           `yaml:"task_rows"`
	EMA          float64       `yaml:"ema"`
	FirstMatch   bool          `yaml:"first_match"`
	PasswdPath   string        `yaml:"passwd"`
	MetricsAddr  string        `yaml:"metrics_addr"`
	LogLevel     string        `yaml:"log_level"`
}

// Default returns the settings used when neither file nor flag sets a value.
func Default() Config {
	return Config{
		Root:         "/proc",
		Interval:     2 * time.Second,
		TaskCapacity: 5000,
		TaskRows:     20,
		PasswdPath:   "/etc/passwd",
		LogLevel:     "info",
	}
}

// Load reads path and fills every unset field from Default.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML, rejecting unknown keys, and applies defaults.
func Parse(b []byte) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// WithDefaults returns c with unset fields taken from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Root == "" {
		c.Root = d.Root
	}
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.TaskCapacity <= 0 {
		c.TaskCapacity = d.TaskCapacity
	}
	if c.TaskRows <= 0 {
		c.TaskRows = d.TaskRows
	}
	if c.PasswdPath == "" {
		c.PasswdPath = d.PasswdPath
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	return c
}

// Validate checks ranges the defaults cannot repair.
func (c Config) Validate() error {
	if c.Samples < 0 {
		return fmt.Errorf("config: samples must be >= 0, got %d", c.Samples)
	}
	if c.EMA < 0 || c.EMA > 1 {
		return fmt.Errorf("config: ema must be in [0,1], got %v", c.EMA)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: log level %q: %w", s, err)
	}
	return l, nil
}
