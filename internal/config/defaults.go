package config

import (
	"git.home.luguber.info/inful/mdblocks/internal/generator/builtin"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
)

// DefaultMetricsAddr is where the watch command serves /metrics.
const DefaultMetricsAddr = ":9102"

var defaultExtensions = []string{"gfm"}

// normalize case-folds enumerations before defaults apply.
func normalize(cfg *Config) error {
	if cfg.Logging.Level != "" {
		level, err := ParseLogLevel(string(cfg.Logging.Level))
		if err != nil {
			return configError(err, "logging.level")
		}
		cfg.Logging.Level = level
	}
	if cfg.Logging.Format != "" {
		format, err := ParseLogFormat(string(cfg.Logging.Format))
		if err != nil {
			return configError(err, "logging.format")
		}
		cfg.Logging.Format = format
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Fallback == "" {
		cfg.Fallback = builtin.Fallback
	}
	if cfg.Generators == nil {
		cfg.Generators = map[string]*string{}
	}
	if cfg.Config == nil {
		cfg.Config = map[string]any{}
	}
	if cfg.Markdown.TabLength == 0 {
		cfg.Markdown.TabLength = markdown.DefaultTabLength
	}
	// An explicit empty list disables every extension.
	if cfg.Markdown.Extensions == nil {
		cfg.Markdown.Extensions = append([]string(nil), defaultExtensions...)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = DefaultMetricsAddr
	}
}
