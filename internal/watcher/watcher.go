package watcher

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
)

// Watcher reports changed source files in batches once no further change
// arrived for the debounce interval.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	include   []glob.Glob
	exclude   []glob.Glob
	onChange  func([]string)
	logger    *slog.Logger

	callbackMu sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
}

// New compiles the include patterns (matched against base names) and the
// exclude patterns (matched against slash-separated paths).
func New(debounce time.Duration, include, exclude []string, onChange func([]string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		pending:  make(map[string]struct{}),
	}

	for _, pattern := range include {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		w.include = append(w.include, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		w.exclude = append(w.exclude, g)
	}

	return w, nil
}

// Matches reports whether path is a source file the watcher cares about.
func (w *Watcher) Matches(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, g := range w.exclude {
		if g.Match(slashed) {
			return false
		}
	}

	base := filepath.Base(path)
	for _, g := range w.include {
		if g.Match(base) {
			return true
		}
	}

	return false
}

// Collect returns every matching file below the given roots, sorted.
func (w *Watcher) Collect(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if !info.IsDir() && w.Matches(path) {
				files = append(files, path)
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func (w *Watcher) Watch(paths []string) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsWatcher = fsw

	for _, path := range paths {
		if err := w.watchRecursive(path); err != nil {
			_ = fsw.Close()
			return err
		}
	}

	go w.run()
	return nil
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()

	if w.fsWatcher == nil {
		return nil
	}

	return w.fsWatcher.Close()
}

func (w *Watcher) watchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return w.fsWatcher.Add(path)
		}

		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watchRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			if !w.Matches(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()

	w.onChange(paths)
}
