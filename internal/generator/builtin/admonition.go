package builtin

import (
	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// AdmonitionTypes are the keywords bound to Admonition by default.
var AdmonitionTypes = []string{"note", "warning", "danger", "tip", "info"}

// Admonition renders a call-out box with a title line. Without a title the
// block type is used, title cased.
var Admonition = &generator.Generator{
	Name:        "admonition",
	Description: "call-out box with a title",
	Params: []generator.Param{
		generator.ContextParam(),
		generator.Arg("title").WithDefault(""),
		generator.VarArgs("classes"),
		generator.VarKwargs("attrs"),
	},
	Func: admonition,
}

func admonition(call *generator.Call) (generator.Result, error) {
	ctx := call.Ctx()
	title := call.String("title")
	if title == "" {
		title = titleCase(ctx.Type)
	}

	names := append([]string{"admonition", ctx.Type}, call.RestStrings()...)
	div := element("div", attr("class", classes(names...)))
	div.Attr = append(div.Attr, extraAttrs(call.Extra())...)

	heading := element("p", attr("class", "admonition-title"))
	heading.AppendChild(text(title))
	div.AppendChild(heading)

	if err := parseContent(ctx, div); err != nil {
		return generator.None(), err
	}
	return generator.Nodes(div), nil
}
