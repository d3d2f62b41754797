// Package config loads the mdblocks configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
)

// Config is the complete mdblocks configuration.
type Config struct {
	// Fallback references the generator used for unbound block types.
	Fallback string `yaml:"fallback" json:"fallback"`
	// Generators overrides keyword bindings. A null, empty or "none"
	// reference selects the fallback.
	Generators map[string]*string `yaml:"generators" json:"generators"`
	// Config is handed to generators as ctx.Config.
	Config   map[string]any `yaml:"config" json:"config"`
	Markdown MarkdownConfig `yaml:"markdown" json:"markdown"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
}

// MarkdownConfig controls prose rendering.
type MarkdownConfig struct {
	Unsafe     bool     `yaml:"unsafe" json:"unsafe"`
	TabLength  int      `yaml:"tab_length" json:"tab_length"`
	Extensions []string `yaml:"extensions" json:"extensions"`
}

// LoggingConfig selects the log handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level" json:"level"`
	Format LogFormat `yaml:"format" json:"format"`
}

// MetricsConfig controls the Prometheus endpoint of the watch command.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Options returns the markdown host options.
func (m MarkdownConfig) Options() markdown.Options {
	return markdown.Options{
		Unsafe:     m.Unsafe,
		TabLength:  m.TabLength,
		Extensions: append([]string(nil), m.Extensions...),
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. Files ending in .json or .jsonc are
// read as JSON with comments, anything else as YAML. Environment variables
// from .env files next to the configuration are loaded first and ${VAR}
// references in the file are expanded.
func Load(path string) (*Config, error) {
	loadEnvFiles(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapError(err, errors.CategoryNotFound, "configuration file not found").
				UserAction().
				WithContext("path", path).
				Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read configuration").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))), formatFor(path))
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes, normalizes, defaults and validates configuration data.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatJSON:
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid JSONC configuration").
				Fatal().
				UserAction().
				Build()
		}
		if err := json.Unmarshal(standardized, &cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid JSON configuration").
				Fatal().
				UserAction().
				Build()
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "invalid YAML configuration").
				Fatal().
				UserAction().
				Build()
		}
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration format %q", format)).Build()
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
