package render

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/mdblocks/internal/customblocks"
	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type countingRecorder struct {
	documents int
	failures  int
}

func (r *countingRecorder) IncBlock(string, bool)                          {}
func (r *countingRecorder) IncDiagnostic(string)                           {}
func (r *countingRecorder) ObserveGeneratorDuration(string, time.Duration) {}
func (r *countingRecorder) ObserveDocumentDuration(_ time.Duration, ok bool) {
	r.documents++
	if !ok {
		r.failures++
	}
}

func newRenderer(t *testing.T, out string, opts ...Option) *Renderer {
	t.Helper()
	proc, err := customblocks.New(customblocks.WithLogger(discard))
	require.NoError(t, err)
	conv, err := markdown.New(markdown.Options{}, []markdown.Extension{proc}, markdown.WithLogger(discard))
	require.NoError(t, err)
	return New(conv, out, append([]Option{WithLogger(discard)}, opts...)...)
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("a/b.md"))
	assert.True(t, IsMarkdown("README.MARKDOWN"))
	assert.False(t, IsMarkdown("a/b.html"))
	assert.False(t, IsMarkdown("md"))
}

func TestOutputPath(t *testing.T) {
	r := newRenderer(t, "/out")

	got, err := r.OutputPath("/src", "/src/guide/intro.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/out", "guide", "intro.html"), got)

	_, err = r.OutputPath("/src", "/elsewhere/x.md")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestTree_RendersAndSkipsUnchanged(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, filepath.Join(src, "index.md"), "# Home\n\n::: note\n    Read me\n:::\n")
	writeSource(t, filepath.Join(src, "guide", "setup.md"), "Setup *steps*\n")
	writeSource(t, filepath.Join(src, "notes.txt"), "not markdown")
	writeSource(t, filepath.Join(src, ".hidden", "secret.md"), "hidden")

	rec := &countingRecorder{}
	r := newRenderer(t, out, WithRecorder(rec))

	sum, err := r.Tree(src)
	require.NoError(t, err)
	assert.Equal(t, Summary{Rendered: 2}, sum)
	assert.Equal(t, 2, rec.documents)

	index := readOutput(t, filepath.Join(out, "index.html"))
	assert.Contains(t, index, "<h1>Home</h1>")
	assert.Contains(t, index, `<div class="admonition note">`)
	assert.Contains(t, readOutput(t, filepath.Join(out, "guide", "setup.html")), "<em>steps</em>")
	assert.NoFileExists(t, filepath.Join(out, "notes.html"))
	assert.NoDirExists(t, filepath.Join(out, ".hidden"))

	sum, err = r.Tree(src)
	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 2}, sum)
}

func TestSync_RerendersWhenOutputMissing(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(src, "page.md")
	writeSource(t, path, "hello\n")
	r := newRenderer(t, out)

	doc, err := r.Sync(src, path)
	require.NoError(t, err)
	assert.NotNil(t, doc)

	doc, err = r.Sync(src, path)
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, os.Remove(filepath.Join(out, "page.html")))
	doc, err = r.Sync(src, path)
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.FileExists(t, filepath.Join(out, "page.html"))
}

func TestSync_FrontmatterChangeRerenders(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(src, "page.md")
	writeSource(t, path, "---\ntitle: One\n---\nbody\n")
	r := newRenderer(t, out)

	_, err := r.Sync(src, path)
	require.NoError(t, err)

	writeSource(t, path, "---\ntitle: Two\n---\nbody\n")
	doc, err := r.Sync(src, path)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Two", doc.Metadata["title"])
}

func TestTree_CollectsFailures(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	writeSource(t, filepath.Join(src, "bad.md"), "---\ntitle: [unclosed\n---\nbody\n")
	writeSource(t, filepath.Join(src, "good.md"), "fine\n")

	rec := &countingRecorder{}
	r := newRenderer(t, out, WithRecorder(rec))

	sum, err := r.Tree(src)
	require.Error(t, err)
	assert.Equal(t, Summary{Rendered: 1, Failed: 1}, sum)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
	assert.FileExists(t, filepath.Join(out, "good.html"))
	assert.NoFileExists(t, filepath.Join(out, "bad.html"))
}

func TestTree_CountsDiagnostics(t *testing.T) {
	src := t.TempDir()
	writeSource(t, filepath.Join(src, "fig.md"), "::: figure\n    body\n:::\n")

	sum, err := newRenderer(t, t.TempDir()).Tree(src)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Rendered)
	assert.Positive(t, sum.Diagnostics)
}

func TestForget_RemovesOutput(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(src, "gone.md")
	writeSource(t, path, "bye\n")
	r := newRenderer(t, out)

	_, err := r.Sync(src, path)
	require.NoError(t, err)
	require.NoError(t, r.Forget(src, path))
	assert.NoFileExists(t, filepath.Join(out, "gone.html"))

	// Forgetting twice is harmless.
	require.NoError(t, r.Forget(src, path))
}

func TestWriteFile_CreatesParents(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "a", "b", "c.html")
	require.NoError(t, WriteFile(dst, []byte("<p>x</p>")))
	assert.Equal(t, "<p>x</p>", readOutput(t, dst))
}

func TestIgnored(t *testing.T) {
	for _, name := range []string{".git", "page.md~", ".page.md.swp", "#page.md#"} {
		assert.True(t, ignored(filepath.Join("docs", name)), name)
	}
	assert.False(t, ignored(filepath.Join("docs", "page.md")))
}

func TestWatch_RerendersOnChange(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := filepath.Join(src, "live.md")
	writeSource(t, path, "first\n")
	r := newRenderer(t, out)

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, src, WatchOptions{
			Debounce: 20 * time.Millisecond,
			Ready:    func() { close(ready) },
		})
	}()

	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("watcher did not become ready")
	}
	assert.Contains(t, readOutput(t, filepath.Join(out, "live.html")), "first")

	writeSource(t, path, "second\n")
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(out, "live.html"))
		return err == nil && strings.Contains(string(data), "<p>second</p>")
	}, 5*time.Second, 20*time.Millisecond)

	nested := filepath.Join(src, "sub", "new.md")
	writeSource(t, nested, "nested\n")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "sub", "new.html"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "live.html"))
		return os.IsNotExist(err)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
