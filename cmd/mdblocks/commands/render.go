package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
	"git.home.luguber.info/inful/mdblocks/internal/render"
)

// RenderCmd converts Markdown files. Without an output directory the HTML
// is written to stdout.
type RenderCmd struct {
	Files  []string `arg:"" name:"file" help:"Markdown files to render, or a single directory." type:"path"`
	Output string   `short:"o" name:"output" help:"Output directory for the rendered HTML." type:"path"`
	Strict bool     `name:"strict" help:"Fail when any block reports a diagnostic."`

	stdout io.Writer `kong:"-"`
}

func (r *RenderCmd) Run(g *Global, _ *CLI) error {
	conv, err := g.NewConverter(metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	renderer := render.New(conv, r.Output, render.WithLogger(g.Logger))

	if r.Output != "" && len(r.Files) == 1 {
		if info, err := os.Stat(r.Files[0]); err == nil && info.IsDir() {
			sum, err := renderer.Tree(r.Files[0])
			g.Logger.Info("Render complete",
				"rendered", sum.Rendered,
				"skipped", sum.Skipped,
				"failed", sum.Failed,
				"diagnostics", sum.Diagnostics)
			if err != nil {
				return err
			}
			return r.checkStrict(sum.Diagnostics)
		}
	}

	out := r.stdout
	if out == nil {
		out = os.Stdout
	}

	var diagnostics int
	for _, file := range r.Files {
		if r.Output != "" {
			dst := filepath.Join(r.Output, strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))+".html")
			doc, err := renderer.Document(file, dst)
			if err != nil {
				return err
			}
			diagnostics += report(g, file, doc.Diagnostics)
			continue
		}

		doc, err := renderer.Convert(file)
		if err != nil {
			return err
		}
		diagnostics += report(g, file, doc.Diagnostics)
		if _, err := out.Write(doc.HTML); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "write output").Build()
		}
	}

	return r.checkStrict(diagnostics)
}

func (r *RenderCmd) checkStrict(diagnostics int) error {
	if r.Strict && diagnostics > 0 {
		return errors.ValidationError(fmt.Sprintf("%d block diagnostic(s) reported", diagnostics)).
			UserAction().
			Build()
	}
	return nil
}

func report(g *Global, file string, diagnostics []string) int {
	for _, d := range diagnostics {
		g.Logger.Warn("Block diagnostic", logfields.Path(file), logfields.Diagnostic(d))
	}
	return len(diagnostics)
}
