package builtin

import (
	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// Details renders a collapsible <details> element.
var Details = &generator.Generator{
	Name:        "details",
	Description: "collapsible section with a summary",
	Params: []generator.Param{
		generator.ContextParam(),
		generator.Arg("summary").WithDefault(""),
		generator.VarArgs("classes"),
		generator.Flag("open", false),
		generator.VarKwargs("attrs"),
	},
	Func: details,
}

func details(call *generator.Call) (generator.Result, error) {
	ctx := call.Ctx()
	summary := call.String("summary")
	if summary == "" {
		summary = titleCase(ctx.Type)
	}

	el := element("details")
	if c := classes(call.RestStrings()...); c != "" {
		el.Attr = append(el.Attr, attr("class", c))
	}
	if call.Bool("open") {
		el.Attr = append(el.Attr, attr("open", ""))
	}
	el.Attr = append(el.Attr, extraAttrs(call.Extra())...)

	sum := element("summary")
	sum.AppendChild(text(summary))
	el.AppendChild(sum)

	if err := parseContent(ctx, el); err != nil {
		return generator.None(), err
	}
	return generator.Nodes(el), nil
}
