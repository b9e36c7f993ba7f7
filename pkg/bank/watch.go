package bank

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is how long a Watcher waits after the last write to
// a file before reloading it.
const WatchDebounce = 100 * time.Millisecond

// ReloadFunc is told about every reload. err is the load error, or
// a watcher error with path set to the watched directory.
type ReloadFunc func(path string, err error)

// Watcher reloads the bank files of a directory into a Bank when
// they are written or created.
type Watcher struct {
	bank     *Bank
	dir      string
	fs       *fsnotify.Watcher
	debounce time.Duration
}

// Watch starts watching dir. Events are only consumed by Run.
func (b *Bank) Watch(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{bank: b, dir: dir, fs: fw, debounce: WatchDebounce}, nil
}

// Run processes events until ctx is done, then stops the watcher.
// onReload may be nil.
func (w *Watcher) Run(ctx context.Context, onReload ReloadFunc) error {
	defer w.fs.Close()
	if onReload == nil {
		onReload = func(string, error) {}
	}

	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) || !isBankFile(ev.Name) {
				continue
			}
			path := ev.Name
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(w.debounce, func() {
				onReload(path, w.bank.LoadFile(path))
			})

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			onReload(w.dir, fmt.Errorf("watch %s: %w", w.dir, err))
		}
	}
}
