package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "paragraphs", text: "a\n\nb\nc", want: []string{"a", "b\nc"}},
		{name: "extra blank line stays with next block", text: "a\n\n\nb", want: []string{"a", "\nb"}},
		{
			name: "fence kept whole",
			text: "intro\n\n```\n::: note\n\nstill code\n```\n\nafter",
			want: []string{"intro", "```\n::: note\n\nstill code\n```", "after"},
		},
		{
			name: "fence interrupting a paragraph",
			text: "intro\n~~~~\ncode\n~~~~\nafter",
			want: []string{"intro", "~~~~\ncode\n~~~~", "after"},
		},
		{
			name: "shorter marker does not close",
			text: "````\n```\n````",
			want: []string{"````\n```\n````"},
		},
		{
			name: "unterminated fence runs to the end",
			text: "```\na\n\nb",
			want: []string{"```\na\n\nb"},
		},
		{
			name: "indented fence is not top level",
			text: "    ```\n\n    x",
			want: []string{"    ```", "    x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitBlocks(tt.text))
		})
	}
}

func TestIsFenced(t *testing.T) {
	assert.True(t, IsFenced("```go\nx\n```"))
	assert.True(t, IsFenced("   ~~~\nx"))
	assert.False(t, IsFenced("    ```\nx"))
	assert.False(t, IsFenced("``inline``"))
	assert.False(t, IsFenced("::: note"))
}

func TestDetab(t *testing.T) {
	tests := []struct {
		name         string
		block        string
		wantIndented string
		wantRest     string
	}{
		{name: "all indented", block: "    a\n    b", wantIndented: "a\nb"},
		{name: "deeper indentation kept", block: "        a", wantIndented: "    a"},
		{name: "blank lines kept empty", block: "    a\n\n    b", wantIndented: "a\n\nb"},
		{name: "stops at unindented", block: "    a\nb\n    c", wantIndented: "a", wantRest: "b\n    c"},
		{name: "unindented first", block: "b\n    c", wantRest: "b\n    c"},
		{name: "empty", block: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indented, rest := Detab(tt.block, 4)
			assert.Equal(t, tt.wantIndented, indented)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb\n\nc", normalize("a\r\nb\r\n  \r\nc", 4))
	assert.Equal(t, "    x\nab  y", normalize("\tx\nab\ty", 4))
}
