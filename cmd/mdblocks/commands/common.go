package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdblocks/internal/config"
	"git.home.luguber.info/inful/mdblocks/internal/customblocks"
	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
)

// Global carries state shared by every subcommand.
type Global struct {
	Config *config.Config
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (defaults to mdblocks.yaml, mdblocks.yml or mdblocks.jsonc when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render     RenderCmd     `cmd:"" help:"Render Markdown files to HTML"`
	Generators GeneratorsCmd `cmd:"" help:"List block types and the generators they dispatch to"`
	Watch      WatchCmd      `cmd:"" help:"Render a directory and re-render files as they change"`
}

// defaultConfigFiles are probed in the working directory when -c is not set.
var defaultConfigFiles = []string{"mdblocks.yaml", "mdblocks.yml", "mdblocks.jsonc"}

// AfterApply runs after flag parsing; loads configuration and sets up logging once.
func (c *CLI) AfterApply(kctx *kong.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.Logging, c.Verbose)
	slog.SetDefault(logger)

	kctx.Bind(&Global{Config: cfg, Logger: logger})
	return nil
}

func (c *CLI) loadConfig() (*config.Config, error) {
	if c.Config != "" {
		return config.Load(c.Config)
	}
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return config.Load(name)
		}
	}
	return config.Default(), nil
}

func newLogger(w io.Writer, cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := cfg.Level.Slog()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewProcessor builds the custom block processor described by the configuration.
func (g *Global) NewProcessor(rec metrics.Recorder) (*customblocks.Processor, error) {
	return customblocks.New(
		customblocks.WithFallback(generator.RefBinding(g.Config.Fallback)),
		customblocks.WithBindings(g.Config.Generators),
		customblocks.WithConfig(g.Config.Config),
		customblocks.WithRecorder(rec),
		customblocks.WithLogger(g.Logger),
	)
}

// NewConverter builds a Markdown converter with the custom block processor installed.
func (g *Global) NewConverter(rec metrics.Recorder) (*markdown.Converter, error) {
	proc, err := g.NewProcessor(rec)
	if err != nil {
		return nil, err
	}
	return markdown.New(g.Config.Markdown.Options(), []markdown.Extension{proc}, markdown.WithLogger(g.Logger))
}
