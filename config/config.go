// Package config loads formctl settings: page geometry, control
// formatting defaults and logging.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/formctl/format"
	"github.com/tsawler/formctl/internal/logger"
	"github.com/tsawler/formctl/layout"
	"github.com/tsawler/formctl/model"
)

// Configuration errors
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrUnknownColor      = errors.New("unknown color")
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMCTL_"

// Config is the top-level configuration.
type Config struct {
	Page    PageConfig    `toml:"page" json:"page" yaml:"page"`
	Control ControlConfig `toml:"control" json:"control" yaml:"control"`
	Log     LogConfig     `toml:"log" json:"log" yaml:"log"`
}

// PageConfig describes the page the shadow boxes are laid out on.
type PageConfig struct {
	Width  float64 `toml:"width" json:"width" yaml:"width" validate:"gt=0"`
	Height float64 `toml:"height" json:"height" yaml:"height" validate:"gt=0"`
	Gap    float64 `toml:"gap" json:"gap" yaml:"gap" validate:"gte=0"`

	// Margins are top, right, bottom, left
	Margins [4]float64 `toml:"margins" json:"margins" yaml:"margins" validate:"dive,gte=0"`
}

// ControlConfig holds the defaults applied when formatting control runs.
type ControlConfig struct {
	Prefix           string `toml:"prefix" json:"prefix" yaml:"prefix" validate:"required"`
	Postfix          string `toml:"postfix" json:"postfix" yaml:"postfix" validate:"required"`
	PlaceholderColor string `toml:"placeholder_color" json:"placeholder_color" yaml:"placeholder_color" validate:"required,color"`
	BracketColor     string `toml:"bracket_color" json:"bracket_color" yaml:"bracket_color" validate:"required,color"`
}

// LogConfig configures internal/logger.
type LogConfig struct {
	Level      string `toml:"level" json:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `toml:"file" json:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" json:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `toml:"max_backups" json:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `toml:"max_age_days" json:"max_age_days" yaml:"max_age_days" validate:"gte=0"`
	JSON       bool   `toml:"json" json:"json" yaml:"json"`
	Quiet      bool   `toml:"quiet" json:"quiet" yaml:"quiet"`
}

// DefaultConfig returns an A4 page at 96 dpi with curly brackets and a grey
// placeholder.
func DefaultConfig() *Config {
	return &Config{
		Page: PageConfig{
			Width:   794,
			Height:  1123,
			Gap:     20,
			Margins: [4]float64{100, 120, 100, 120},
		},
		Control: ControlConfig{
			Prefix:           "{",
			Postfix:          "}",
			PlaceholderColor: "#9c9b9b",
			BracketColor:     "#000000",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(data, path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode picks the decoder from the extension of path, or from the content
// when the extension is not one of .toml, .json, .yaml or .yml.
func decode(data []byte, path string, cfg *Config) error {
	switch format.Resolve(path, data) {
	case format.TOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML: %w", err)
		}
	case format.JSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	case format.YAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	return nil
}

// ApplyEnvOverrides applies FORMCTL_* variables on top of the loaded values.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv(EnvPrefix + "PREFIX"); v != "" {
		c.Control.Prefix = v
	}
	if v := os.Getenv(EnvPrefix + "POSTFIX"); v != "" {
		c.Control.Postfix = v
	}
	if v := os.Getenv(EnvPrefix + "PLACEHOLDER_COLOR"); v != "" {
		c.Control.PlaceholderColor = v
	}
	if v := os.Getenv(EnvPrefix + "BRACKET_COLOR"); v != "" {
		c.Control.BracketColor = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvPrefix + "LOG_FILE"); v != "" {
		c.Log.File = v
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"PAGE_WIDTH", &c.Page.Width},
		{"PAGE_HEIGHT", &c.Page.Height},
		{"PAGE_GAP", &c.Page.Gap},
	}
	for _, f := range floats {
		v := os.Getenv(EnvPrefix + f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q", ErrInvalidConfig, EnvPrefix, f.name, v)
		}
		*f.dst = n
	}
	return nil
}

// FormatOptions converts the control section for model.Format. Color names
// are resolved to #rrggbb; Validate has already rejected unknown names.
func (c *Config) FormatOptions() model.FormatOptions {
	opts := model.DefaultFormatOptions()
	opts.Prefix = c.Control.Prefix
	opts.Postfix = c.Control.Postfix
	if hex, err := ResolveColor(c.Control.PlaceholderColor); err == nil {
		opts.PlaceholderColor = hex
	}
	if hex, err := ResolveColor(c.Control.BracketColor); err == nil {
		opts.BracketColor = hex
	}
	return opts
}

// Geometry converts the page section for layout.ShadowBoxes.
func (c *Config) Geometry() layout.PageGeometry {
	return layout.PageGeometry{
		Width:   c.Page.Width,
		Height:  c.Page.Height,
		Gap:     c.Page.Gap,
		Margins: c.Page.Margins,
	}
}

// LoggerOptions converts the log section for logger.New.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		JSON:       c.Log.JSON,
		Quiet:      c.Log.Quiet,
	}
}
