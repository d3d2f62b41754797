package customblocks

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdblocks/internal/customblocks/binding"
	"git.home.luguber.info/inful/mdblocks/internal/customblocks/syntax"
	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
)

// Processor is the custom block processor. It is safe for concurrent use by
// several documents.
type Processor struct {
	table    *generator.Table
	config   generator.Config
	recorder metrics.Recorder
	logger   *slog.Logger
}

var (
	_ markdown.BlockProcessor = (*Processor)(nil)
	_ markdown.Extension      = (*Processor)(nil)
)

// New resolves the generator bindings and returns a Processor. Unknown
// references fail here with a configuration error.
func New(opts ...Option) (*Processor, error) {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}

	table, err := s.registry.BuildTable(s.bindings, s.fallback)
	if err != nil {
		return nil, err
	}
	return &Processor{
		table:    table,
		config:   generator.NewConfig(s.config),
		recorder: s.recorder,
		logger:   s.logger,
	}, nil
}

// Extend registers the processor with a converter.
func (p *Processor) Extend(c *markdown.Converter) error {
	c.AddProcessor(p)
	return nil
}

// Table returns the resolved keyword bindings.
func (p *Processor) Table() *generator.Table {
	return p.table
}

// Test reports whether block holds a custom block headline.
func (p *Processor) Test(_ *html.Node, block string) bool {
	return syntax.MatchHeadline(block)
}

// Run renders the custom block starting in (*blocks)[0].
func (p *Processor) Run(doc *markdown.State, parent *html.Node, blocks *[]string) error {
	head, ok := syntax.ExtractHeadline((*blocks)[0])
	if !ok {
		return errors.InternalError("block holds no custom block headline").Build()
	}
	if head.Leading != "" {
		if err := doc.ParseChunk(parent, head.Leading); err != nil {
			return err
		}
	}
	(*blocks)[0] = head.Trailing

	params := syntax.ParseParams(head.ParamsText)
	content := syntax.AccumulateContent(syntax.DetabFunc(doc.Detab), blocks)
	if len(*blocks) > 0 {
		(*blocks)[0] = syntax.StripClosingMarker((*blocks)[0])
	}

	entry, fallback := p.table.Lookup(head.Type)
	p.recorder.IncBlock(head.Type, fallback)

	logger := doc.Logger
	if logger == nil {
		logger = p.logger
	}
	ctx := &generator.Context{
		Type:       head.Type,
		Parent:     parent,
		Content:    content,
		Parser:     doc,
		Metadata:   doc.Metadata,
		Config:     p.config,
		Logger:     logger.With(logfields.BlockType(head.Type), logfields.Generator(entry.Ref)),
		DocumentID: doc.ID,
	}

	bound := binding.Bind(entry.Generator.Params, ctx, params.Positional, params.Named)
	for _, msg := range append(params.Warnings, bound.Diagnostics...) {
		doc.Warn(fmt.Sprintf("In block '%s', %s", head.Type, msg), logfields.BlockType(head.Type))
		p.recorder.IncDiagnostic(head.Type)
	}

	start := time.Now()
	result, err := entry.Generator.Call(ctx, bound.Args, bound.Kwargs)
	elapsed := time.Since(start)
	p.recorder.ObserveGeneratorDuration(head.Type, elapsed)
	if err != nil {
		return errors.WrapError(err, errors.CategoryGenerator, "generator failed").
			Fatal().
			WithContext("block_type", head.Type).
			WithContext("generator", entry.Ref).
			Build()
	}
	ctx.Logger.Debug("Rendered custom block",
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))

	if err := appendResult(parent, result); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "invalid generator output").
			Fatal().
			WithContext("block_type", head.Type).
			WithContext("generator", entry.Ref).
			Build()
	}
	return nil
}

func appendResult(parent *html.Node, result generator.Result) error {
	switch result.Kind() {
	case generator.ResultNone:
		return nil
	case generator.ResultMarkup:
		return markdown.AppendHTML(parent, strings.NewReader(result.Text()))
	case generator.ResultRaw:
		return markdown.AppendHTML(parent, bytes.NewReader(result.Bytes()))
	case generator.ResultNode:
		for _, n := range result.NodeList() {
			if n == nil {
				continue
			}
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			} else {
				n.PrevSibling, n.NextSibling = nil, nil
			}
			parent.AppendChild(n)
		}
		return nil
	default:
		return fmt.Errorf("unknown result kind %d", result.Kind())
	}
}
