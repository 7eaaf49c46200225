package watcher

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// errEventDropped is sent on the error channel when the event buffer is full.
var errEventDropped = errors.New("event buffer full, event dropped")

// DirWatcher watches files through fsnotify watches on their parent
// directories. Directory events for other names are discarded.
type DirWatcher struct {
	fsw *fsnotify.Watcher

	mu    sync.RWMutex
	files map[string]string // file -> dir
	refs  map[string]int    // dir -> watched files
	shut  bool

	events chan Event
	errors chan error

	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewDirWatcher starts an fsnotify watcher. Only BufferSize is read from
// the options.
func NewDirWatcher(opts ...WatcherOption) (*DirWatcher, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	w := &DirWatcher{
		fsw:    fsw,
		files:  map[string]string{},
		refs:   map[string]int{},
		events: make(chan Event, cfg.BufferSize),
		errors: make(chan error, cfg.BufferSize),
		quit:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.forward()
	return w, nil
}

// Watch adds a regular file. The first file of a directory adds a
// watch on the directory.
func (w *DirWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.shut {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; ok {
		return ErrAlreadyWatching
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrPathNotExist
	case err != nil:
		return err
	case info.IsDir():
		return ErrIsDirectory
	}

	dir := filepath.Dir(abs)
	if w.refs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.refs[dir]++
	w.files[abs] = dir
	return nil
}

// Unwatch removes a file, dropping the directory watch with its last file.
func (w *DirWatcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.shut {
		return ErrWatcherClosed
	}
	dir, ok := w.files[abs]
	if !ok {
		return ErrNotWatching
	}
	delete(w.files, abs)

	if w.refs[dir]--; w.refs[dir] > 0 {
		return nil
	}
	delete(w.refs, dir)
	return w.fsw.Remove(dir)
}

func (w *DirWatcher) IsWatching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.files[abs]
	return ok
}

func (w *DirWatcher) Events() <-chan Event { return w.events }
func (w *DirWatcher) Errors() <-chan error { return w.errors }

// Close stops forwarding, closes both channels and releases the fsnotify
// watcher. Calling it again is a no-op.
func (w *DirWatcher) Close() error {
	var err error
	w.once.Do(func() {
		w.mu.Lock()
		w.shut = true
		w.mu.Unlock()

		close(w.quit)
		w.wg.Wait()
		close(w.events)
		close(w.errors)
		err = w.fsw.Close()
	})
	return err
}

func (w *DirWatcher) forward() {
	defer w.wg.Done()
	for {
		select {
		case <-w.quit:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if out, keep := w.translate(ev); keep {
				w.emit(out)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

// translate maps a directory event to an Event for a watched file.
func (w *DirWatcher) translate(ev fsnotify.Event) (Event, bool) {
	name := filepath.Clean(ev.Name)

	w.mu.RLock()
	_, watched := w.files[name]
	w.mu.RUnlock()
	if !watched {
		return Event{}, false
	}

	op := opFromFSNotify(ev.Op)
	return Event{Path: name, Op: op, Timestamp: time.Now()}, op != 0
}

var fsnotifyOps = []struct {
	from fsnotify.Op
	to   Op
}{
	{fsnotify.Create, OpCreate},
	{fsnotify.Write, OpWrite},
	{fsnotify.Remove, OpRemove},
	{fsnotify.Rename, OpRename},
	{fsnotify.Chmod, OpChmod},
}

func opFromFSNotify(in fsnotify.Op) Op {
	var op Op
	for _, m := range fsnotifyOps {
		if in.Has(m.from) {
			op |= m.to
		}
	}
	return op
}

func (w *DirWatcher) emit(ev Event) {
	select {
	case w.events <- ev:
	default:
		w.fail(fmt.Errorf("%s: %w", ev.Path, errEventDropped))
	}
}

// fail reports err unless the error buffer is full.
func (w *DirWatcher) fail(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

var _ Watcher = (*DirWatcher)(nil)
