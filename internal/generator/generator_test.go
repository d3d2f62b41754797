package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*Call) (Result, error) { return None(), nil }

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		params  []Param
		wantErr bool
	}{
		{"empty", nil, false},
		{"full signature", []Param{
			PositionalArg("a"), ContextParam(), Arg("b"), VarArgs("rest"),
			KeywordArg("k"), Flag("f", false), VarKwargs("extra"),
		}, false},
		{"missing name", []Param{{Kind: PositionalOrKeyword}}, true},
		{"duplicate", []Param{Arg("a"), Arg("a")}, true},
		{"keyword before positional", []Param{KeywordArg("k"), Arg("a")}, true},
		{"two var positionals", []Param{VarArgs("a"), VarArgs("b")}, true},
		{"two var keywords", []Param{VarKwargs("a"), VarKwargs("b")}, true},
		{"var keyword not last", []Param{VarKwargs("a"), KeywordArg("b")}, true},
		{"invalid kind", []Param{{Name: "x", Kind: ParamKind(42)}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.params)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParamFlagged(t *testing.T) {
	assert.True(t, Flag("autoplay", false).Flagged())
	assert.True(t, Arg("x").WithDefault(true).Flagged())
	assert.True(t, Param{Name: "hinted", IsFlag: true}.Flagged())
	assert.False(t, Arg("x").WithDefault("yes").Flagged())
	assert.False(t, Arg("x").Flagged())
}

func TestGeneratorValidate(t *testing.T) {
	var nilGen *Generator
	assert.Error(t, nilGen.Validate())
	assert.Error(t, (&Generator{Func: noop}).Validate())
	assert.Error(t, (&Generator{Name: "x"}).Validate())
	assert.Error(t, (&Generator{Name: "x", Func: noop, Params: []Param{Arg("a"), Arg("a")}}).Validate())
	assert.NoError(t, (&Generator{Name: "x", Func: noop}).Validate())
}

func TestCallAccessors(t *testing.T) {
	params := []Param{
		ContextParam(),
		Arg("url"),
		Arg("count").WithDefault(3),
		VarArgs("classes"),
		KeywordArg("alt"),
		Flag("lightbox", false),
		VarKwargs("attrs"),
	}
	ctx := &Context{Type: "figure"}
	call := NewCall(ctx, params,
		[]any{ctx, "img.png", 3, "wide", "dark"},
		map[string]any{"alt": "a cat", "lightbox": true, "data-x": "1"},
	)

	require.Same(t, ctx, call.Ctx())
	assert.Equal(t, "img.png", call.String("url"))
	assert.Equal(t, "3", call.String("count"))
	assert.Equal(t, "a cat", call.String("alt"))
	assert.True(t, call.Bool("lightbox"))
	assert.Equal(t, []any{"wide", "dark"}, call.Rest())
	assert.Equal(t, []string{"wide", "dark"}, call.RestStrings())
	assert.Equal(t, map[string]any{"data-x": "1"}, call.Extra())

	_, ok := call.Arg("missing")
	assert.False(t, ok)
	assert.Equal(t, "", call.String("missing"))
}

func TestCallWithoutContextParam(t *testing.T) {
	call := NewCall(&Context{}, []Param{Arg("a")}, []any{"x"}, nil)

	assert.Nil(t, call.Ctx())
	assert.Equal(t, "x", call.String("a"))
	assert.Empty(t, call.Rest())
	assert.NotNil(t, call.Kwargs)
}

func TestCallBoolFromText(t *testing.T) {
	call := NewCall(nil, []Param{KeywordArg("a"), KeywordArg("b"), KeywordArg("c")}, nil,
		map[string]any{"a": "false", "b": "yes", "c": ""})

	assert.False(t, call.Bool("a"))
	assert.True(t, call.Bool("b"))
	assert.False(t, call.Bool("c"))
	assert.False(t, call.Bool("absent"))
}

func TestConfig(t *testing.T) {
	src := map[string]any{
		"name":    "x",
		"width":   640,
		"height":  "360",
		"ratio":   1.5,
		"enabled": true,
		"youtube": map[string]any{"width": 560},
	}
	cfg := NewConfig(src)
	src["name"] = "mutated"

	assert.Equal(t, "x", cfg.String("name", ""))
	assert.Equal(t, "640", cfg.String("width", ""))
	assert.Equal(t, "def", cfg.String("absent", "def"))
	assert.Equal(t, 640, cfg.Int("width", 0))
	assert.Equal(t, 360, cfg.Int("height", 0))
	assert.Equal(t, 1, cfg.Int("ratio", 0))
	assert.Equal(t, 7, cfg.Int("name", 7))
	assert.True(t, cfg.Bool("enabled", false))
	assert.Equal(t, 560, cfg.Section("youtube").Int("width", 0))
	assert.Equal(t, 0, cfg.Section("absent").Int("width", 0))
	assert.Equal(t, []string{"enabled", "height", "name", "ratio", "width", "youtube"}, cfg.Keys())
}

func TestResultVariants(t *testing.T) {
	assert.Equal(t, ResultNone, None().Kind())
	assert.Equal(t, "<p>x</p>", Markup("<p>x</p>").Text())
	assert.Equal(t, ResultRaw, Raw([]byte("<b>")).Kind())
	assert.Len(t, Nodes(nil, nil).NodeList(), 2)
	assert.Equal(t, "keyword-only", KeywordOnly.String())
}
