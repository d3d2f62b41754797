package config

import (
	"fmt"
	"net"
	"slices"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
)

// Validate checks a defaulted configuration. Generator references are only
// checked for form here; they are resolved when the block processor is built.
func Validate(cfg *Config) error {
	v := &validator{cfg: cfg}
	for _, check := range []func() error{
		v.validateGenerators,
		v.validateMarkdown,
		v.validateMetrics,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type validator struct {
	cfg *Config
}

func (v *validator) validateGenerators() error {
	if err := generator.ValidateReference(v.cfg.Fallback); err != nil {
		return configError(err, "fallback")
	}
	for keyword, ref := range v.cfg.Generators {
		if keyword == "" {
			return configError(fmt.Errorf("empty block type"), "generators")
		}
		if generator.RefBinding(deref(ref)).IsNone() {
			continue
		}
		if err := generator.ValidateReference(*ref); err != nil {
			return configError(err, "generators."+keyword)
		}
	}
	return nil
}

func (v *validator) validateMarkdown() error {
	if v.cfg.Markdown.TabLength < 1 {
		return configError(fmt.Errorf("must be positive, got %d", v.cfg.Markdown.TabLength), "markdown.tab_length")
	}
	known := markdown.ExtensionNames()
	for _, ext := range v.cfg.Markdown.Extensions {
		if !slices.Contains(known, ext) {
			return configError(fmt.Errorf("unknown extension %q, valid options: %v", ext, known), "markdown.extensions")
		}
	}
	return nil
}

func (v *validator) validateMetrics() error {
	if !v.cfg.Metrics.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(v.cfg.Metrics.Addr); err != nil {
		return configError(err, "metrics.addr")
	}
	return nil
}

func configError(err error, field string) error {
	return errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
		Fatal().
		UserAction().
		WithContext("field", field).
		Build()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
