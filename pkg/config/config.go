// Package config loads the protochain runtime settings from a YAML file
// with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit config file is given.
const DefaultPath = "protochain.yaml"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	// Lessons lists enabled lesson IDs; empty enables every lesson.
	Lessons       []string `yaml:"lessons"`
	MaxChainDepth int      `yaml:"max_chain_depth"`
	Color         string   `yaml:"color"`
	LogLevel      string   `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		MaxChainDepth: 64,
		Color:         ColorAuto,
		LogLevel:      "info",
	}
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path means DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from PROTOCHAIN_* environment variables.
func (c *Config) ApplyEnv() {
	c.MaxChainDepth = getEnvInt("PROTOCHAIN_MAX_CHAIN_DEPTH", c.MaxChainDepth)
	c.Color = getEnvString("PROTOCHAIN_COLOR", c.Color)
	c.LogLevel = getEnvString("PROTOCHAIN_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("PROTOCHAIN_LESSONS"); v != "" {
		c.Lessons = c.Lessons[:0]
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				c.Lessons = append(c.Lessons, id)
			}
		}
	}
}

func (c *Config) Validate() error {
	if c.MaxChainDepth <= 0 {
		return fmt.Errorf("%w: max_chain_depth must be positive, got %d", ErrInvalid, c.MaxChainDepth)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be auto, always or never, got %q", ErrInvalid, c.Color)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return level, fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return level, nil
}

// Logger returns a console logger on w at the configured level.
func (c *Config) Logger(w io.Writer) *zap.Logger {
	level, err := c.Level()
	if err != nil {
		level = zapcore.InfoLevel
	}
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core)
}

// Enabled reports whether the lesson id is switched on.
func (c *Config) Enabled(id string) bool {
	return len(c.Lessons) == 0 || slices.Contains(c.Lessons, id)
}
