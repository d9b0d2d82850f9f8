package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a batch
// is delivered.
const DefaultDebounce = 500 * time.Millisecond

// Config wires a Watcher to its surroundings. Match decides whether a
// written file belongs to a batch; SkipDir prunes directories from
// watching; OnBatch receives the accumulated changed paths after the
// debounce window closes; OnError observes watcher errors (optional).
type Config struct {
	Roots    []string
	Debounce time.Duration
	Match    func(path string) bool
	SkipDir  func(path string) bool
	OnBatch  func(ctx context.Context, paths []string)
	OnError  func(err error)
}

// Watcher watches directory trees and delivers debounced batches of
// changed files.
type Watcher struct {
	cfg      Config
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// New creates a watcher over cfg.Roots, registering every nested directory.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		cfg:     cfg,
		watcher: fsw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}

	for _, root := range cfg.Roots {
		if err := w.addRecursively(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Start begins the event loop.
func (w *Watcher) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		_ = w.watcher.Close()
	})
}

// run is the main event loop with debouncing.
func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	flushCh := make(chan struct{}, 1)
	changed := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// удаления форматировать нечего, chmod не меняет содержимое
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// новые каталоги включаются в наблюдение
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.cfg.SkipDir == nil || !w.cfg.SkipDir(event.Name) {
						if err := w.addRecursively(event.Name); err != nil && w.cfg.OnError != nil {
							w.cfg.OnError(err)
						}
					}
					continue
				}
			}

			if w.cfg.Match != nil && !w.cfg.Match(event.Name) {
				continue
			}
			changed[event.Name] = struct{}{}

			// Reset debounce timer - properly stop and drain
			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.cfg.Debounce, func() {
				select {
				case flushCh <- struct{}{}:
				default:
				}
			})

		case <-flushCh:
			w.deliver(ctx, changed)
			changed = make(map[string]struct{})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.cfg.OnError != nil {
				w.cfg.OnError(err)
			}
		}
	}
}

// deliver hands a sorted batch to the callback.
func (w *Watcher) deliver(ctx context.Context, changed map[string]struct{}) {
	if len(changed) == 0 || w.cfg.OnBatch == nil {
		return
	}
	paths := make([]string, 0, len(changed))
	for path := range changed {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	w.cfg.OnBatch(ctx, paths)
}

// addRecursively registers every directory under root.
func (w *Watcher) addRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// одна недоступная директория не должна останавливать
			// наблюдение за остальными
			if w.cfg.OnError != nil {
				w.cfg.OnError(err)
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.cfg.SkipDir != nil && w.cfg.SkipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			if w.cfg.OnError != nil {
				w.cfg.OnError(err)
			}
		}
		return nil
	})
}
