package builtin

import (
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/mdblocks/internal/generator"
)

const (
	defaultVideoWidth  = 560
	defaultVideoHeight = 315
)

// YouTube renders an embedded video player. The player size comes from the
// "youtube" configuration section and can be overridden per block with
// width= and height=.
var YouTube = &generator.Generator{
	Name:        "youtube",
	Description: "embedded YouTube player",
	Params: []generator.Param{
		generator.ContextParam(),
		generator.Arg("id"),
		generator.VarArgs("classes"),
		generator.Flag("autoplay", false),
		generator.Flag("controls", true),
		generator.Flag("loop", false),
		generator.VarKwargs("attrs"),
	},
	Func: youtube,
}

func youtube(call *generator.Call) (generator.Result, error) {
	ctx := call.Ctx()
	id := call.String("id")
	if id == "" {
		return generator.None(), nil
	}

	cfg := ctx.Config.Section("youtube")
	width := cfg.Int("width", defaultVideoWidth)
	height := cfg.Int("height", defaultVideoHeight)
	extra := call.Extra()
	if v, ok := extra["width"]; ok {
		if n, err := strconv.Atoi(toString(v)); err == nil {
			width = n
		}
	}
	if v, ok := extra["height"]; ok {
		if n, err := strconv.Atoi(toString(v)); err == nil {
			height = n
		}
	}

	q := url.Values{}
	if call.Bool("autoplay") {
		q.Set("autoplay", "1")
	}
	if !call.Bool("controls") {
		q.Set("controls", "0")
	}
	if call.Bool("loop") {
		q.Set("loop", "1")
		q.Set("playlist", id)
	}
	src := "https://www.youtube.com/embed/" + url.PathEscape(id)
	if len(q) > 0 {
		src += "?" + q.Encode()
	}

	names := append([]string{"videowrapper", "youtube"}, call.RestStrings()...)
	return generator.Markup(fmt.Sprintf(
		`<div class="%s"><iframe width="%d" height="%d" src="%s" frameborder="0" allowfullscreen></iframe></div>`,
		html.EscapeString(classes(names...)), width, height, html.EscapeString(src),
	)), nil
}
