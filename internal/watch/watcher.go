// Package watch reports edits made to the active file by other programs.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"flutteredit/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change is an external modification of the tracked file.
type Change struct {
	Path    string
	Removed bool
	Time    time.Time
}

type fileMark struct {
	modTime time.Time
	size    int64
	exists  bool
}

// Watcher follows one file at a time. It watches the file's directory so that
// editors which save through rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan Change
	stopChan  chan struct{}
	doneChan  chan struct{}

	mutex  sync.Mutex
	target   string
	dir      string
	mark     fileMark
	quietEnd time.Time
}

// New creates a watcher and starts its event loop.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan Change, 8),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers external modifications. It is closed by Close.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Track makes path the watched file and records its current size and modification
// time. An empty path stops tracking. Tracking the current file again is a no-op.
func (w *Watcher) Track(path string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if path != "" {
		path = filepath.Clean(path)
	}
	if path == w.target {
		return nil
	}
	w.mark = markOf(path)

	if w.dir != "" {
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir)).WithError(err).Debug("remove watch")
		}
		w.dir = ""
	}
	w.target = path
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := w.fsWatcher.Add(dir); err != nil {
		w.target = ""
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dir = dir
	log.LogWithFields(log.F("file", path)).Debug("tracking file")
	return nil
}

// Suppress ignores every event for d. Call it before the editor writes the tracked
// file itself, then Track the file again once the write is done.
func (w *Watcher) Suppress(d time.Duration) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.quietEnd = time.Now().Add(d)
}

// Tracked returns the file currently being watched.
func (w *Watcher) Tracked() string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.target
}

// Close stops the event loop and closes Changes.
func (w *Watcher) Close() error {
	close(w.stopChan)
	err := w.fsWatcher.Close()
	<-w.doneChan
	return err
}

func (w *Watcher) loop() {
	defer close(w.doneChan)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if change, ok := w.classify(event); ok {
				select {
				case w.changes <- change:
				default:
					log.LogWithFields(log.F("file", change.Path)).Warn("change channel is full, dropped event")
				}
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

		case <-w.stopChan:
			return
		}
	}
}

// classify decides whether event is an external change of the tracked file.
func (w *Watcher) classify(event fsnotify.Event) (Change, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.target == "" || filepath.Clean(event.Name) != w.target {
		return Change{}, false
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return Change{}, false
	}

	current := markOf(w.target)
	if time.Now().Before(w.quietEnd) {
		w.mark = current
		return Change{}, false
	}
	if current == w.mark {
		return Change{}, false
	}
	w.mark = current
	return Change{Path: w.target, Removed: !current.exists, Time: time.Now()}, true
}

func markOf(path string) fileMark {
	if path == "" {
		return fileMark{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return fileMark{}
	}
	return fileMark{modTime: info.ModTime(), size: info.Size(), exists: true}
}
