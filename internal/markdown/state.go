package markdown

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/generator"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
)

// State is the per-document conversion state. It is not safe for
// concurrent use.
type State struct {
	// ID identifies the document in logs.
	ID          string
	Fingerprint string
	// Metadata is shared by every block of the document.
	Metadata generator.Metadata
	Logger   *slog.Logger

	conv        *Converter
	root        *html.Node
	diagnostics []string
}

// Root is the synthetic element the document is rendered under.
func (s *State) Root() *html.Node {
	return s.root
}

// Diagnostics returns the warnings reported so far.
func (s *State) Diagnostics() []string {
	return append([]string(nil), s.diagnostics...)
}

// Warn records a diagnostic and logs it.
func (s *State) Warn(msg string, attrs ...slog.Attr) {
	s.diagnostics = append(s.diagnostics, msg)
	args := make([]any, 0, len(attrs)+1)
	args = append(args, logfields.Diagnostic(msg))
	for _, a := range attrs {
		args = append(args, a)
	}
	s.Logger.Warn("Block diagnostic", args...)
}

// Detab removes one indentation level from the leading lines of block.
func (s *State) Detab(block string) (indented, rest string) {
	return Detab(block, s.conv.tabLength)
}

// ParseChunk splits text into blocks and processes them under parent.
func (s *State) ParseChunk(parent *html.Node, text string) error {
	return s.ParseBlocks(parent, SplitBlocks(text))
}

// ParseBlocks processes a block queue under parent.
func (s *State) ParseBlocks(parent *html.Node, blocks []string) error {
	queue := blocks
	var prose []string
	flush := func() error {
		if len(prose) == 0 {
			return nil
		}
		text := strings.Join(prose, "\n\n")
		prose = prose[:0]
		return s.renderProse(parent, text)
	}

	for len(queue) > 0 {
		block := queue[0]
		if strings.TrimSpace(block) == "" {
			queue = queue[1:]
			continue
		}
		p := s.claim(parent, block)
		if p == nil {
			prose = append(prose, block)
			queue = queue[1:]
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		before := len(queue)
		if err := p.Run(s, parent, &queue); err != nil {
			return err
		}
		if len(queue) == before && queue[0] == block {
			return errors.InternalError("block processor consumed nothing").
				WithContext("document_id", s.ID).
				Build()
		}
	}
	return flush()
}

func (s *State) claim(parent *html.Node, block string) BlockProcessor {
	if IsFenced(block) {
		return nil
	}
	for _, p := range s.conv.processors {
		if p.Test(parent, block) {
			return p
		}
	}
	return nil
}

func (s *State) renderProse(parent *html.Node, text string) error {
	var buf bytes.Buffer
	if err := s.conv.md.Convert([]byte(text), &buf); err != nil {
		return errors.WrapError(err, errors.CategoryRender, "render markdown").
			WithContext("document_id", s.ID).
			Build()
	}
	return AppendHTML(parent, &buf)
}

// AppendHTML parses r as an HTML fragment in the context of parent and
// appends the resulting nodes to it.
func AppendHTML(parent *html.Node, r io.Reader) error {
	nodes, err := html.ParseFragment(r, fragmentContext(parent))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "parse html fragment").Build()
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}
	return nil
}

// fragmentContext returns a detached element equivalent to parent, as
// ParseFragment requires an element with a consistent DataAtom.
func fragmentContext(parent *html.Node) *html.Node {
	if parent == nil || parent.Type != html.ElementNode {
		return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	}
	return &html.Node{
		Type:      html.ElementNode,
		Data:      parent.Data,
		DataAtom:  atom.Lookup([]byte(parent.Data)),
		Namespace: parent.Namespace,
	}
}
