package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
)

const exampleYAML = `
fallback: builtin:container
generators:
  note: builtin:admonition
  legacy: null
config:
  youtube:
    width: 560
markdown:
  unsafe: true
  tab_length: 2
  extensions: [gfm, footnote, typographer]
logging:
  level: DEBUG
  format: json
metrics:
  enabled: true
  addr: ":9102"
`

func TestParse_YAML(t *testing.T) {
	cfg, err := Parse([]byte(exampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "builtin:container", cfg.Fallback)
	require.Contains(t, cfg.Generators, "note")
	assert.Equal(t, "builtin:admonition", *cfg.Generators["note"])
	require.Contains(t, cfg.Generators, "legacy")
	assert.Nil(t, cfg.Generators["legacy"])

	youtube, ok := cfg.Config["youtube"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 560, youtube["width"])

	opts := cfg.Markdown.Options()
	assert.True(t, opts.Unsafe)
	assert.Equal(t, 2, opts.TabLength)
	assert.Equal(t, []string{"gfm", "footnote", "typographer"}, opts.Extensions)

	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestParse_JSONC(t *testing.T) {
	data := []byte(`{
		// bindings
		"generators": {"tip": "builtin:admonition", "old": null,},
		"markdown": {"extensions": []},
	}`)
	cfg, err := Parse(data, FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "builtin:admonition", *cfg.Generators["tip"])
	assert.Nil(t, cfg.Generators["old"])
	assert.Empty(t, cfg.Markdown.Extensions, "explicit empty list is kept")
	assert.Equal(t, "builtin:container", cfg.Fallback)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "builtin:container", cfg.Fallback)
	assert.Equal(t, 4, cfg.Markdown.TabLength)
	assert.Equal(t, []string{"gfm"}, cfg.Markdown.Extensions)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, DefaultMetricsAddr, cfg.Metrics.Addr)
	assert.NotNil(t, cfg.Generators)
	assert.NotNil(t, cfg.Config)
	require.NoError(t, Validate(cfg))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{name: "log level", data: "logging: {level: loud}", field: "logging.level"},
		{name: "log format", data: "logging: {format: xml}", field: "logging.format"},
		{name: "fallback reference", data: "fallback: container", field: "fallback"},
		{name: "generator reference", data: "generators: {note: ':admonition'}", field: "generators.note"},
		{name: "extension", data: "markdown: {extensions: [emoji]}", field: "markdown.extensions"},
		{name: "tab length", data: "markdown: {tab_length: -1}", field: "markdown.tab_length"},
		{name: "metrics address", data: "metrics: {enabled: true, addr: nowhere}", field: "metrics.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			ce, ok := errors.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, errors.CategoryConfig, ce.Category())
			field, _ := ce.Context().GetString("field")
			assert.Equal(t, tt.field, field)
		})
	}
}

func TestParse_NoneReferenceIsAccepted(t *testing.T) {
	cfg, err := Parse([]byte("generators: {note: none, tip: ''}"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "none", *cfg.Generators["note"])
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("generators: [\n"), FormatYAML)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	_, err = Parse([]byte("{"), FormatJSON)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoad_ExpandsEnvFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { _ = os.Unsetenv("MDBLOCKS_TEST_NOTE_REF") })

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MDBLOCKS_TEST_NOTE_REF=builtin:details\n"), 0o600))
	path := filepath.Join(dir, "mdblocks.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generators:\n  note: ${MDBLOCKS_TEST_NOTE_REF}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "builtin:details", *cfg.Generators["note"])
}

func TestLoad_JSONByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdblocks.jsonc")
	require.NoError(t, os.WriteFile(path, []byte("{\n  // comment\n  \"fallback\": \"builtin:details\",\n}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "builtin:details", cfg.Fallback)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestLogLevelSlog(t *testing.T) {
	level, err := ParseLogLevel("Warning")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, level)
	assert.Equal(t, "WARN", level.Slog().String())
	assert.Equal(t, "INFO", LogLevel("").Slog().String())
}
