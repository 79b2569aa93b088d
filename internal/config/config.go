// Package config loads kinokoc settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "kinoko.toml"

// Output formats for printed trees.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the CLI settings.
type Config struct {
	Format         string `toml:"format" yaml:"format"`
	Color          bool   `toml:"color" yaml:"color"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	ContextLines   int    `toml:"context_lines" yaml:"context_lines"`
	MaxSourceBytes int64  `toml:"max_source_bytes" yaml:"max_source_bytes"`

	path string
}

// Default returns the settings used when no file is loaded.
func Default() *Config {
	return &Config{
		Format:         FormatText,
		Color:          true,
		LogLevel:       "warn",
		ContextLines:   1,
		MaxSourceBytes: 1 << 20,
	}
}

// Load reads the file at path on top of the defaults. The format follows the
// extension: .yaml and .yml are YAML, anything else is TOML.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config file path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	c := Default()
	if err := decode(data, detectFormat(path), c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	c.path = path
	return c, nil
}

// Discover loads path if it is set. Otherwise it loads DefaultFile from dir
// when present and falls back to Default.
func Discover(path, dir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	candidate := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return Load(candidate)
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that every field holds an accepted value.
func (c *Config) Validate() error {
	var errs []error

	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		errs = append(errs, fmt.Errorf("format must be text, json or yaml, got %q", c.Format))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.ContextLines < 0 {
		errs = append(errs, fmt.Errorf("context_lines must not be negative, got %d", c.ContextLines))
	}
	if c.MaxSourceBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_source_bytes must be positive, got %d", c.MaxSourceBytes))
	}

	return errors.Join(errs...)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
}

type fileFormat int

const (
	formatTOML fileFormat = iota
	formatYAML
)

func detectFormat(path string) fileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatTOML
	}
}

func decode(data []byte, f fileFormat, c *Config) error {
	switch f {
	case formatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return fmt.Errorf("unknown key %q", undec[0].String())
		}
	}
	return nil
}
