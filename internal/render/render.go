// Package render writes converted Markdown documents to an output tree.
package render

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
	"git.home.luguber.info/inful/mdblocks/internal/markdown"
	"git.home.luguber.info/inful/mdblocks/internal/metrics"
)

// Renderer converts source files and writes the HTML under an output
// directory. It remembers the fingerprint of every document it wrote so
// unchanged sources are skipped.
type Renderer struct {
	conv     *markdown.Converter
	outDir   string
	recorder metrics.Recorder
	logger   *slog.Logger

	mu           sync.Mutex
	fingerprints map[string]string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRecorder sets the metrics recorder for document durations.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a Renderer writing under outDir.
func New(conv *markdown.Converter, outDir string, opts ...Option) *Renderer {
	r := &Renderer{
		conv:         conv,
		outDir:       outDir,
		recorder:     metrics.NoopRecorder{},
		logger:       slog.Default(),
		fingerprints: make(map[string]string),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Summary counts the outcome of rendering a tree.
type Summary struct {
	Rendered    int
	Skipped     int
	Failed      int
	Diagnostics int
}

// IsMarkdown reports whether path names a Markdown source.
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

// OutputPath maps src, a file under root, to its HTML file in the output tree.
func (r *Renderer) OutputPath(root, src string) (string, error) {
	rel, err := filepath.Rel(root, src)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", errors.NewError(errors.CategoryValidation, "source is outside the watched directory").
			WithContext("path", src).
			Build()
	}
	return filepath.Join(r.outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html"), nil
}

// Convert reads and converts src without writing anything.
func (r *Renderer) Convert(src string) (*markdown.Rendered, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read source").
			WithContext("path", src).
			Build()
	}

	start := time.Now()
	out, err := r.conv.Convert(data)
	r.recorder.ObserveDocumentDuration(time.Since(start), err == nil)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", src)
		}
		return nil, err
	}
	return out, nil
}

// Document converts src and writes the result to dst.
func (r *Renderer) Document(src, dst string) (*markdown.Rendered, error) {
	out, err := r.Convert(src)
	if err != nil {
		return nil, err
	}
	if err := WriteFile(dst, out.HTML); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.fingerprints[src] = out.Fingerprint
	r.mu.Unlock()

	r.logger.Info("Rendered document",
		logfields.Path(src),
		logfields.Output(dst),
		logfields.DocumentID(out.ID),
		slog.Int("diagnostics", len(out.Diagnostics)),
		logfields.DurationMS(float64(out.Duration.Microseconds())/1000))
	return out, nil
}

// Sync renders src, a file under root, unless its fingerprint matches the
// last written version and the output still exists. A skipped document
// returns nil.
func (r *Renderer) Sync(root, src string) (*markdown.Rendered, error) {
	dst, err := r.OutputPath(root, src)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read source").
			WithContext("path", src).
			Build()
	}
	fp, err := r.conv.Fingerprint(data)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	last, seen := r.fingerprints[src]
	r.mu.Unlock()
	if seen && last == fp {
		if _, err := os.Stat(dst); err == nil {
			r.logger.Debug("Document unchanged", logfields.Path(src))
			return nil, nil
		}
	}

	return r.Document(src, dst)
}

// Forget drops src from the output tree after its source was removed.
func (r *Renderer) Forget(root, src string) error {
	r.mu.Lock()
	delete(r.fingerprints, src)
	r.mu.Unlock()

	dst, err := r.OutputPath(root, src)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.WrapError(err, errors.CategoryFileSystem, "remove output").
			WithContext("path", dst).
			Build()
	}
	return nil
}

// Tree renders every Markdown file under root. A failing document does not
// stop the others; all failures are returned joined.
func (r *Renderer) Tree(root string) (Summary, error) {
	var sum Summary
	var errs []error
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && ignored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored(path) || !IsMarkdown(path) {
			return nil
		}

		doc, err := r.Sync(root, path)
		switch {
		case err != nil:
			sum.Failed++
			errs = append(errs, err)
			r.logger.Error("Render failed", logfields.Path(path), logfields.Error(err))
		case doc != nil:
			sum.Rendered++
			sum.Diagnostics += len(doc.Diagnostics)
		default:
			sum.Skipped++
		}
		return nil
	})
	if walkErr != nil {
		errs = append(errs, errors.WrapError(walkErr, errors.CategoryFileSystem, "walk source tree").
			WithContext("path", root).
			Build())
	}
	return sum, stderrors.Join(errs...)
}

// WriteFile atomically replaces path with data, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", path).
			Build()
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write output").
			WithContext("path", path).
			Build()
	}
	return nil
}

// ignored reports hidden entries and editor leftovers.
func ignored(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}
