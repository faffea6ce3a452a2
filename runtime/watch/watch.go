// Package watch rewrites grouped class strings in place as files change.
package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/twgroup/core/errors"
	"github.com/aledsdavies/twgroup/core/invariant"
	"github.com/aledsdavies/twgroup/runtime/rewrite"
)

// Option configures a Watcher
type Option func(*Watcher)

// WithLogger sets the logger for watch activity.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithResultHandler registers fn to be called after every processed file,
// including files that needed no change.
func WithResultHandler(fn func(*rewrite.FileResult, error)) Option {
	return func(w *Watcher) {
		w.onResult = fn
	}
}

// Watcher owns an fsnotify watcher and the digests of files it has written.
type Watcher struct {
	rewriter *rewrite.Rewriter
	fsw      *fsnotify.Watcher
	logger   *slog.Logger
	onResult func(*rewrite.FileResult, error)

	mu      sync.Mutex
	written map[string][blake2b.Size256]byte // path -> digest of our last write
}

// New creates a Watcher. Call Add for each root, then Run.
func New(rw *rewrite.Rewriter, opts ...Option) (*Watcher, error) {
	invariant.NotNil(rw, "rewriter")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		rewriter: rw,
		fsw:      fsw,
		written:  make(map[string][blake2b.Size256]byte),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w, nil
}

// Add watches root and every directory below it. Hidden directories and
// node_modules are skipped.
func (w *Watcher) Add(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && IgnoredDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.logger.Debug("watching", "dir", path)
		return nil
	})
}

// IgnoredDir reports whether a directory name is never descended into.
func IgnoredDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}

// Run processes events until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Error("failed to watch new directory", "dir", event.Name, "error", err)
			}
			return
		}
	}

	if !w.rewriter.Supports(event.Name) {
		return
	}

	res, err := w.ProcessFile(event.Name)
	if err != nil {
		w.logger.Error("rewrite failed", "file", event.Name, "error", err)
	}
	if w.onResult != nil && (res != nil || err != nil) {
		w.onResult(res, err)
	}
}

// ProcessFile rewrites path in place if its expansion differs. It returns
// nil, nil when the file content is exactly what the watcher last wrote.
func (w *Watcher) ProcessFile(path string) (*rewrite.FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read %s", path), err)
	}
	if w.isOwnWrite(path, data) {
		w.logger.Debug("skipping own write", "file", path)
		return nil, nil
	}

	res, err := w.rewriter.RewriteFile(path)
	if err != nil {
		return nil, err
	}
	for _, f := range res.Report.Failures {
		w.logger.Warn("left unexpanded", "file", path, "line", f.Line, "error", f.Err)
	}
	if !res.Changed() {
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if err := os.WriteFile(path, []byte(res.Output), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.remember(path, []byte(res.Output))
	w.logger.Debug("rewrote", "file", path, "expanded", res.Report.Expanded)
	return res, nil
}

func (w *Watcher) isOwnWrite(path string, data []byte) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	digest, ok := w.written[path]
	return ok && digest == blake2b.Sum256(data)
}

func (w *Watcher) remember(path string, data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.written[path] = blake2b.Sum256(data)
}
