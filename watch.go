package springball

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit per save.
const reloadDebounce = 100 * time.Millisecond

// OptionsWatcher reports changes to a YAML options file. It watches the
// containing directory so atomic-rename saves are seen. Events carries the
// file path; drain it from the game loop, not from another goroutine that
// touches widgets.
type OptionsWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// WatchOptions starts watching path. Only .yaml and .yml files are accepted.
func WatchOptions(path string) (*OptionsWatcher, error) {
	if !isOptionsFile(path) {
		return nil, fmt.Errorf("springball: watch %s: not a .yaml/.yml file", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("springball: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("springball: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("springball: watch %s: %w", path, err)
	}

	watcher := &OptionsWatcher{
		watcher: w,
		path:    abs,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *OptionsWatcher) Path() string {
	return w.path
}

// Close stops the watcher. Safe to call more than once.
func (w *OptionsWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Poll returns the changed path if an event is waiting, without blocking.
func (w *OptionsWatcher) Poll() (string, bool) {
	select {
	case p := <-w.Events:
		return p, true
	default:
		return "", false
	}
}

func (w *OptionsWatcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < reloadDebounce {
				continue
			}
			last = now
			select {
			case w.Events <- w.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isOptionsFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
