package generator

import "golang.org/x/net/html"

// ResultKind enumerates what a generator produced.
type ResultKind int

const (
	// ResultNone appends nothing; the generator may have written to Parent itself.
	ResultNone ResultKind = iota
	// ResultMarkup is UTF-8 HTML text parsed into nodes.
	ResultMarkup
	// ResultRaw is raw HTML bytes parsed into nodes.
	ResultRaw
	// ResultNode is a node fragment appended as is.
	ResultNode
)

// Result is the output of a generator.
type Result struct {
	kind  ResultKind
	text  string
	raw   []byte
	nodes []*html.Node
}

// None is the empty result.
func None() Result { return Result{kind: ResultNone} }

// Markup returns a result holding HTML text.
func Markup(s string) Result { return Result{kind: ResultMarkup, text: s} }

// Raw returns a result holding raw HTML bytes.
func Raw(b []byte) Result { return Result{kind: ResultRaw, raw: b} }

// Nodes returns a result holding detached nodes.
func Nodes(nodes ...*html.Node) Result { return Result{kind: ResultNode, nodes: nodes} }

func (r Result) Kind() ResultKind       { return r.kind }
func (r Result) Text() string           { return r.text }
func (r Result) Bytes() []byte          { return r.raw }
func (r Result) NodeList() []*html.Node { return r.nodes }
