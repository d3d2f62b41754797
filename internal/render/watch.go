package render

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdblocks/internal/foundation/errors"
	"git.home.luguber.info/inful/mdblocks/internal/logfields"
)

// DefaultDebounce is the quiet period before changed files are re-rendered.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions tunes Watch.
type WatchOptions struct {
	Debounce time.Duration
	// Ready is called once the initial render finished and the watcher is
	// registered on every directory.
	Ready func()
}

// Watch renders root once and then re-renders Markdown files as they change,
// until ctx is cancelled.
func (r *Renderer) Watch(ctx context.Context, root string, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	sum, err := r.Tree(root)
	if err != nil {
		r.logger.Warn("Initial render had failures", slog.Int("failed", sum.Failed), logfields.Error(err))
	}
	r.logger.Info("Initial render complete",
		slog.Int("rendered", sum.Rendered),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "create file watcher").Build()
	}
	defer func() { _ = watcher.Close() }()

	if err := addDirsRecursive(watcher, root); err != nil {
		return err
	}
	r.logger.Info("Watching for changes", logfields.Path(root))
	if opts.Ready != nil {
		opts.Ready()
	}

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	pending := make(map[string]struct{})
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(opts.Debounce, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirsRecursive(watcher, ev.Name); err != nil {
						r.logger.Warn("Failed to watch directory", logfields.Path(ev.Name), logfields.Error(err))
					}
					pending[ev.Name] = struct{}{}
					schedule()
					continue
				}
			}
			if !IsMarkdown(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				pending[ev.Name] = struct{}{}
				schedule()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("Watcher error", logfields.Error(err))

		case <-fire:
			r.flush(root, pending)
			pending = make(map[string]struct{})
		}
	}
}

// flush re-renders or forgets each pending path.
func (r *Renderer) flush(root string, pending map[string]struct{}) {
	for path := range pending {
		info, err := os.Stat(path)
		switch {
		case os.IsNotExist(err):
			if IsMarkdown(path) {
				if err := r.Forget(root, path); err != nil {
					r.logger.Warn("Failed to remove output", logfields.Path(path), logfields.Error(err))
				}
			}
		case err != nil:
			r.logger.Warn("Failed to stat changed path", logfields.Path(path), logfields.Error(err))
		case info.IsDir():
			if _, err := r.Tree(root); err != nil {
				r.logger.Warn("Render had failures", logfields.Error(err))
			}
		default:
			if _, err := r.Sync(root, path); err != nil {
				r.logger.Error("Render failed", logfields.Path(path), logfields.Error(err))
			}
		}
	}
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && ignored(path) {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "watch directory").
				WithContext("path", path).
				Build()
		}
		return nil
	})
}
