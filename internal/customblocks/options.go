package customblocks

import (
	"log/slog"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/generator/builtin"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
)

type settings struct {
	registry *generator.Registry
	fallback generator.Binding
	bindings map[string]generator.Binding
	config   map[string]any
	recorder metrics.Recorder
	logger   *slog.Logger
}

func defaultSettings() settings {
	return settings{
		registry: builtin.Registry(),
		fallback: generator.RefBinding(builtin.Fallback),
		bindings: map[string]generator.Binding{},
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// Option configures a Processor.
type Option func(*settings)

// WithRegistry resolves references against r instead of the built-in registry.
func WithRegistry(r *generator.Registry) Option {
	return func(s *settings) { s.registry = r }
}

// WithFallback sets the generator used for unbound types.
func WithFallback(b generator.Binding) Option {
	return func(s *settings) { s.fallback = b }
}

// WithBindings overrides installed keyword bindings by reference. A nil,
// empty or "none" reference selects the fallback.
func WithBindings(refs map[string]*string) Option {
	return func(s *settings) {
		for keyword, ref := range refs {
			if ref == nil {
				s.bindings[keyword] = generator.Binding{}
				continue
			}
			s.bindings[keyword] = generator.RefBinding(*ref)
		}
	}
}

// WithGenerator binds keyword directly to g.
func WithGenerator(keyword string, g *generator.Generator) Option {
	return func(s *settings) { s.bindings[keyword] = generator.DirectBinding(g) }
}

// WithConfig sets the configuration exposed to generators as ctx.Config.
func WithConfig(cfg map[string]any) Option {
	return func(s *settings) { s.config = cfg }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *settings) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the logger used when no document logger is available.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
