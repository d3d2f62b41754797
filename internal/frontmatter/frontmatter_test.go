package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantHeader string
		wantBody   string
		wantOK     bool
	}{
		{name: "no header", source: "# Title\n\nHello\n", wantBody: "# Title\n\nHello\n"},
		{name: "header and body", source: "---\ntitle: x\n---\n# Title\n", wantHeader: "title: x\n", wantBody: "# Title\n", wantOK: true},
		{name: "empty header", source: "---\n---\nbody\n", wantBody: "body\n", wantOK: true},
		{name: "header only", source: "---\na: 1\n---", wantHeader: "a: 1\n", wantOK: true},
		{name: "rule later in document", source: "text\n---\nmore\n", wantBody: "text\n---\nmore\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, ok, err := Split(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHeader, header)
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestSplit_Unterminated(t *testing.T) {
	_, _, ok, err := Split("---\ntitle: x\n# Title\n")
	require.ErrorIs(t, err, ErrUnterminated)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	fields, err := Parse("title: Hello\ntags: [a, b]\n")
	require.NoError(t, err)
	assert.Equal(t, "Hello", fields["title"])
	assert.Equal(t, []any{"a", "b"}, fields["tags"])

	empty, err := Parse("  \n")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = Parse("title: [unclosed\n")
	require.Error(t, err)
}

func TestCanonical_SortsKeys(t *testing.T) {
	out, err := Canonical(map[string]any{
		"b": "two",
		"a": "one",
		"n": map[string]any{"z": 1, "y": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "a: one\nb: two\nn:\n  y: true\n  z: 1", out)

	empty, err := Canonical(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]any{"title": "x"}, "body\n")
	require.NoError(t, err)
	require.NotEmpty(t, a)

	b, err := Fingerprint(map[string]any{"title": "x", "fingerprint": "stale"}, "body\n")
	require.NoError(t, err)
	assert.Equal(t, a, b, "stored fingerprint must not change the hash")

	c, err := Fingerprint(map[string]any{"title": "x"}, "other\n")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
