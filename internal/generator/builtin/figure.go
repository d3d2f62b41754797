package builtin

import (
	"fmt"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

// FigureCountKey is the metadata key holding the last figure number.
const FigureCountKey = "figure_count"

// Figure renders an image with an optional caption. The numbered flag
// prefixes the caption with a per-document running number; lightbox wraps
// the image in a link to itself.
var Figure = &generator.Generator{
	Name:        "figure",
	Description: "image with caption",
	Params: []generator.Param{
		generator.ContextParam(),
		generator.Arg("url"),
		generator.Arg("caption").WithDefault(""),
		generator.VarArgs("classes"),
		generator.Flag("lightbox", false),
		generator.Flag("numbered", false),
		generator.KeywordArg("alt").WithDefault(""),
		generator.VarKwargs("attrs"),
	},
	Func: figure,
}

func figure(call *generator.Call) (generator.Result, error) {
	ctx := call.Ctx()
	src := call.String("url")
	caption := call.String("caption")
	alt := call.String("alt")
	if alt == "" {
		alt = caption
	}

	fig := element("figure", attr("class", classes(append([]string{"figure"}, call.RestStrings()...)...)))
	fig.Attr = append(fig.Attr, extraAttrs(call.Extra())...)

	img := element("img", attr("src", src), attr("alt", alt))
	if call.Bool("lightbox") {
		link := element("a", attr("href", src), attr("data-lightbox", "figures"))
		link.AppendChild(img)
		fig.AppendChild(link)
	} else {
		fig.AppendChild(img)
	}

	if call.Bool("numbered") {
		caption = fmt.Sprintf("Figure %d. %s", nextFigure(ctx.Metadata), caption)
	}
	if caption == "" && ctx.Content == "" {
		return generator.Nodes(fig), nil
	}

	figcaption := element("figcaption")
	if caption != "" {
		figcaption.AppendChild(text(caption))
	}
	if err := parseContent(ctx, figcaption); err != nil {
		return generator.None(), err
	}
	fig.AppendChild(figcaption)
	return generator.Nodes(fig), nil
}

func nextFigure(meta generator.Metadata) int {
	if meta == nil {
		return 1
	}
	n, _ := meta[FigureCountKey].(int)
	n++
	meta[FigureCountKey] = n
	return n
}
