// Package customblocks dispatches custom Markdown blocks to generators.
//
// A custom block starts with a headline naming its type and parameters,
// followed by indented content and an optional closing marker:
//
//	::: note "Read this" wide
//	    Content, parsed as Markdown.
//	:::
//
// The Processor plugs into the markdown host as a block processor. For each
// headline it extracts the parameters and nested content, selects a
// generator by type from a generator.Table, binds the parameters to the
// generator signature and appends the generator output to the document.
package customblocks
