package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a workspace for source changes and reports them in
// debounced batches so a burst of editor saves triggers one regeneration.
type Watcher interface {
	// Start begins watching. The callback receives the batch of changed file
	// paths after the debounce window closes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop shuts the watcher down. Idempotent.
	Stop() error
}

// skippedDirs are directory names never worth watching.
var skippedDirs = map[string]bool{
	".git":         true,
	".prdgen":      true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

type workspaceWatcher struct {
	watcher      *fsnotify.Watcher
	rootDir      string
	extensions   map[string]bool
	debounceTime time.Duration

	callback func(files []string)
	ctx      context.Context
	cancel   context.CancelFunc

	pending       map[string]bool
	pendingMu     sync.Mutex
	debounceTimer *time.Timer
	timerMu       sync.Mutex

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher over rootDir for files with the given extensions
// (e.g. []string{".ts", ".tsx"}).
func New(rootDir string, extensions []string) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	extMap := make(map[string]bool)
	for _, ext := range extensions {
		extMap[ext] = true
	}

	w := &workspaceWatcher{
		watcher:      fsw,
		rootDir:      rootDir,
		extensions:   extMap,
		debounceTime: 500 * time.Millisecond,
		pending:      make(map[string]bool),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

func (w *workspaceWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	w.callback = callback
	w.ctx, w.cancel = context.WithCancel(ctx)

	go w.watch()
	return nil
}

func (w *workspaceWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
			<-w.doneCh
		} else {
			close(w.doneCh)
		}
		err = w.watcher.Close()
	})
	return err
}

// watch is the main event loop: accumulate matching events, fire the callback
// once the debounce window has been quiet.
func (w *workspaceWatcher) watch() {
	defer close(w.doneCh)

	flushCh := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			w.stopDebounceTimer()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if !w.shouldProcessEvent(event) {
				continue
			}

			w.pendingMu.Lock()
			w.pending[event.Name] = true
			w.pendingMu.Unlock()

			w.resetDebounceTimer(flushCh)

		case <-flushCh:
			w.flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// flush fires the callback with the accumulated batch.
func (w *workspaceWatcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	files := make([]string, 0, len(w.pending))
	for file := range w.pending {
		files = append(files, file)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	w.callback(files)
}

func (w *workspaceWatcher) resetDebounceTimer(flushCh chan struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		if !w.debounceTimer.Stop() {
			select {
			case <-w.debounceTimer.C:
			default:
			}
		}
	}

	w.debounceTimer = time.AfterFunc(w.debounceTime, func() {
		select {
		case flushCh <- struct{}{}:
		default:
		}
	})
}

func (w *workspaceWatcher) stopDebounceTimer() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
}

// shouldProcessEvent filters events to writes/creates/removes of watched
// extensions outside skipped directories.
func (w *workspaceWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(event.Name), "/") {
		if skippedDirs[part] {
			return false
		}
	}
	return w.extensions[filepath.Ext(event.Name)]
}

// addDirectoriesRecursively registers rootPath and all subdirectories,
// skipping directories that never hold watchable sources.
func (w *workspaceWatcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if skippedDirs[info.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
