// Package markdown is the block-oriented document host.
//
// A document is split into blank-line separated blocks which are consumed
// front to back. Blocks claimed by a BlockProcessor are handed to it with
// the remaining queue; consecutive unclaimed blocks are rendered together
// with goldmark. Output is accumulated as an HTML node tree.
package markdown

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/frontmatter"
	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
)

// BlockProcessor claims and consumes blocks from the queue.
type BlockProcessor interface {
	// Test reports whether the processor handles block.
	Test(parent *html.Node, block string) bool
	// Run consumes blocks starting at (*blocks)[0], which passed Test, and
	// appends its output under parent.
	Run(doc *State, parent *html.Node, blocks *[]string) error
}

// Extension adds processors to a Converter.
type Extension interface {
	Extend(c *Converter) error
}

// Converter renders Markdown documents to HTML. It is safe for concurrent
// use once built; each Convert call gets its own State.
type Converter struct {
	md         goldmark.Markdown
	tabLength  int
	processors []BlockProcessor
	logger     *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for document diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds a Converter and applies exts in order.
func New(opts Options, exts []Extension, options ...Option) (*Converter, error) {
	md, err := opts.goldmark()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid markdown options").
			Fatal().
			UserAction().
			Build()
	}
	c := &Converter{
		md:        md,
		tabLength: opts.tabLength(),
		logger:    slog.Default(),
	}
	for _, o := range options {
		o(c)
	}
	for _, ext := range exts {
		if err := ext.Extend(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddProcessor registers p. Processors are tested in registration order.
func (c *Converter) AddProcessor(p BlockProcessor) {
	c.processors = append(c.processors, p)
}

// TabLength returns the indentation width of one nesting level.
func (c *Converter) TabLength() int {
	return c.tabLength
}

// Rendered is the outcome of converting one document.
type Rendered struct {
	HTML        []byte
	ID          string
	Fingerprint string
	Metadata    generator.Metadata
	Diagnostics []string
	Duration    time.Duration
}

// Convert renders source. A leading YAML header is removed from the output
// and seeds the document metadata.
func (c *Converter) Convert(source []byte) (*Rendered, error) {
	start := time.Now()
	in, err := c.prepare(source)
	if err != nil {
		return nil, err
	}

	doc := c.newState(generator.Metadata(in.fields))
	doc.Fingerprint = in.fingerprint

	if err := doc.ParseChunk(doc.root, in.body); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for n := doc.root.FirstChild; n != nil; n = n.NextSibling {
		if err := html.Render(&buf, n); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "render html").
				WithContext("document_id", doc.ID).
				Build()
		}
	}

	return &Rendered{
		HTML:        buf.Bytes(),
		ID:          doc.ID,
		Fingerprint: doc.Fingerprint,
		Metadata:    doc.Metadata,
		Diagnostics: doc.Diagnostics(),
		Duration:    time.Since(start),
	}, nil
}

// Fingerprint returns the fingerprint Convert would report for source,
// without rendering it.
func (c *Converter) Fingerprint(source []byte) (string, error) {
	in, err := c.prepare(source)
	if err != nil {
		return "", err
	}
	return in.fingerprint, nil
}

type input struct {
	fields      map[string]any
	body        string
	fingerprint string
}

func (c *Converter) prepare(source []byte) (input, error) {
	text := normalize(norm.NFC.String(string(source)), c.tabLength)

	header, body, _, err := frontmatter.Split(text)
	if err != nil {
		return input{}, errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").Build()
	}
	fields, err := frontmatter.Parse(header)
	if err != nil {
		return input{}, errors.WrapError(err, errors.CategoryValidation, "invalid frontmatter").Build()
	}
	fingerprint, err := frontmatter.Fingerprint(fields, body)
	if err != nil {
		return input{}, errors.WrapError(err, errors.CategoryInternal, "fingerprint document").Build()
	}
	return input{fields: fields, body: body, fingerprint: fingerprint}, nil
}

func (c *Converter) newState(meta generator.Metadata) *State {
	id := uuid.NewString()
	if meta == nil {
		meta = generator.Metadata{}
	}
	return &State{
		ID:       id,
		Metadata: meta,
		Logger:   c.logger.With(logfields.DocumentID(id)),
		conv:     c,
		root:     &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div},
	}
}

// NewState returns a State for a document rendered piecewise, as done by
// processors under test.
func (c *Converter) NewState() *State {
	return c.newState(nil)
}
