// Package config holds the explicit run configuration of the lsbstego
// command. Values come from an optional YAML file and are then
// overridden by command line flags; nothing is read from global state.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects the operation.
type Mode string

const (
	Hide    Mode = "hide"
	Find    Mode = "find"
	Inspect Mode = "inspect"
)

const (
	MaxPathLen    = 4096
	MaxMessageLen = 1 << 20
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode   Mode   `yaml:"mode"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`

	// Message is the text to hide. Each byte of the string is one message byte.
	Message string `yaml:"message"`
	// Length is the number of message bytes to find.
	Length int `yaml:"length"`

	// ECC selects the payload codec: "none" or "golay".
	ECC  string `yaml:"ecc"`
	Seed int64  `yaml:"seed"`

	LengthHeader bool `yaml:"length_header"`
	Lenient      bool `yaml:"lenient"`

	// Offset overrides the header offset of the detected file kind when set.
	Offset *int `yaml:"offset,omitempty"`

	LogLevel string `yaml:"log_level"`
}

// Default returns a Config with the defaults used when no file is given.
func Default() Config {
	return Config{
		ECC:      "none",
		Seed:     1234567890,
		LogLevel: "info",
	}
}

// LoadFile reads the YAML config at path on top of Default.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the fields required by Mode are present and within limits.
func (c Config) Validate() error {
	switch c.Mode {
	case Hide, Find, Inspect:
	case "":
		return fmt.Errorf("%w: mode is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if err := checkPath("input", c.Input); err != nil {
		return err
	}

	switch c.Mode {
	case Hide:
		if err := checkPath("output", c.Output); err != nil {
			return err
		}
		if c.Output == c.Input {
			return fmt.Errorf("%w: output must differ from input", ErrInvalidConfig)
		}
		if c.Message == "" {
			return fmt.Errorf("%w: message is required", ErrInvalidConfig)
		}
		if len(c.Message) > MaxMessageLen {
			return fmt.Errorf("%w: message is %d bytes, maximum %d", ErrInvalidConfig, len(c.Message), MaxMessageLen)
		}
	case Find:
		if c.Length < 0 || c.Length > MaxMessageLen {
			return fmt.Errorf("%w: length %d out of range [0, %d]", ErrInvalidConfig, c.Length, MaxMessageLen)
		}
		if c.Length == 0 && !c.LengthHeader {
			return fmt.Errorf("%w: length is required without the length header", ErrInvalidConfig)
		}
	}

	switch strings.ToLower(c.ECC) {
	case "", "none", "golay":
	default:
		return fmt.Errorf("%w: unknown ecc %q", ErrInvalidConfig, c.ECC)
	}
	if c.Offset != nil && *c.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrInvalidConfig, *c.Offset)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

func checkPath(name, path string) error {
	if path == "" {
		return fmt.Errorf("%w: %s path is required", ErrInvalidConfig, name)
	}
	if len(path) > MaxPathLen {
		return fmt.Errorf("%w: %s path is %d bytes, maximum %d", ErrInvalidConfig, name, len(path), MaxPathLen)
	}
	return nil
}
