package builtin

import (
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// Container renders <div class="TYPE ARGS..."> with extra keywords as
// attributes and the block content parsed inside. It is the default
// fallback for unbound block types.
var Container = &generator.Generator{
	Name:        "container",
	Description: "div classed by the block type and extra words",
	Params: []generator.Param{
		generator.ContextParam(),
		generator.VarArgs("classes"),
		generator.VarKwargs("attrs"),
	},
	Func: container,
}

func container(call *generator.Call) (generator.Result, error) {
	ctx := call.Ctx()
	div := element("div", attr("class", classes(append([]string{ctx.Type}, call.RestStrings()...)...)))
	div.Attr = append(div.Attr, extraAttrs(call.Extra())...)
	if err := parseContent(ctx, div); err != nil {
		return generator.None(), err
	}
	return generator.Nodes(div), nil
}

func parseContent(ctx *generator.Context, parent *html.Node) error {
	if ctx.Content == "" || ctx.Parser == nil {
		return nil
	}
	return ctx.Parser.ParseChunk(parent, ctx.Content)
}
