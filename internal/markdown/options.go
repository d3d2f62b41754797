package markdown

import (
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// DefaultTabLength is the indentation width of one nesting level.
const DefaultTabLength = 4

// Options controls how prose between custom blocks is rendered.
type Options struct {
	// Unsafe keeps raw HTML written in the Markdown source.
	Unsafe bool
	// TabLength is the indentation width of one nesting level.
	TabLength int
	// Extensions names goldmark extensions to enable.
	Extensions []string
}

var extensions = map[string]goldmark.Extender{
	"gfm":            extension.GFM,
	"table":          extension.Table,
	"strikethrough":  extension.Strikethrough,
	"tasklist":       extension.TaskList,
	"linkify":        extension.Linkify,
	"footnote":       extension.Footnote,
	"typographer":    extension.Typographer,
	"definitionlist": extension.DefinitionList,
}

// ExtensionNames lists the extension names accepted in Options.
func ExtensionNames() []string {
	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o Options) tabLength() int {
	if o.TabLength <= 0 {
		return DefaultTabLength
	}
	return o.TabLength
}

func (o Options) goldmark() (goldmark.Markdown, error) {
	var exts []goldmark.Extender
	for _, name := range o.Extensions {
		ext, ok := extensions[name]
		if !ok {
			return nil, fmt.Errorf("unknown markdown extension %q", name)
		}
		exts = append(exts, ext)
	}

	var rendererOpts []goldmark.Option
	if o.Unsafe {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	return goldmark.New(append(rendererOpts, goldmark.WithExtensions(exts...))...), nil
}
