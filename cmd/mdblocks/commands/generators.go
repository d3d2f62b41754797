package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/mdblocks/internal/metrics"
)

// GeneratorsCmd prints the dispatch table.
type GeneratorsCmd struct {
	stdout io.Writer `kong:"-"`
}

func (c *GeneratorsCmd) Run(g *Global, _ *CLI) error {
	proc, err := g.NewProcessor(metrics.NoopRecorder{})
	if err != nil {
		return err
	}
	table := proc.Table()

	out := c.stdout
	if out == nil {
		out = os.Stdout
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tGENERATOR\tDESCRIPTION")
	for _, keyword := range table.Keywords() {
		entry, _ := table.Lookup(keyword)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", keyword, entry.Ref, entry.Generator.Description)
	}
	fb := table.Fallback()
	_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", "*", fb.Ref, fb.Generator.Description)
	return w.Flush()
}
