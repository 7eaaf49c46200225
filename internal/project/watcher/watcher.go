// Package watcher reports changes to individual files.
//
// Editors often save by writing a temporary file and renaming it over the
// original, which drops a watch placed on the file itself. Watchers here
// watch the parent directory instead and filter events down to the
// watched file names. A DebouncedWatcher coalesces the burst of events a
// single save produces.
package watcher

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
	ErrIsDirectory     = errors.New("path is a directory")
)

// Op is a set of file operations.
type Op uint32

const (
	OpCreate Op = 1 << iota // created, or renamed into place
	OpWrite
	OpRemove
	OpRename // renamed away
	OpChmod
)

var opNames = []struct {
	op   Op
	name string
}{
	{OpCreate, "CREATE"},
	{OpWrite, "WRITE"},
	{OpRemove, "REMOVE"},
	{OpRename, "RENAME"},
	{OpChmod, "CHMOD"},
}

// String joins the names of the operations in op with "|".
func (op Op) String() string {
	var names []string
	for _, n := range opNames {
		if op.Has(n.op) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// Has reports whether op includes every operation in o.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Changed reports whether the file content may differ after op.
func (op Op) Changed() bool {
	return op&(OpCreate|OpWrite) != 0
}

// Event is a change to a watched file. Path is absolute.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Watcher reports changes to a set of files. Events and Errors are
// closed by Close.
type Watcher interface {
	Watch(path string) error
	Unwatch(path string) error
	IsWatching(path string) bool
	Events() <-chan Event
	Errors() <-chan error
	Close() error
}

// Config tunes a watcher.
type Config struct {
	DebounceDelay time.Duration // quiet period before a burst is emitted
	BufferSize    int           // capacity of the event and error channels
}

// DefaultConfig returns 100ms debouncing and 100-entry buffers.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    100,
	}
}

type WatcherOption func(*Config)

func WithDebounceDelay(d time.Duration) WatcherOption {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

func WithBufferSize(size int) WatcherOption {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// NewDebounced returns a DirWatcher wrapped in a DebouncedWatcher.
func NewDebounced(opts ...WatcherOption) (*DebouncedWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	inner, err := NewDirWatcher(opts...)
	if err != nil {
		return nil, err
	}
	return NewDebouncedWatcher(inner, config.DebounceDelay), nil
}

// Run delivers events to onEvent and errors to onError until ctx is
// cancelled or the watcher is closed. An error returned by onEvent stops
// the loop and is returned.
func Run(ctx context.Context, w Watcher, onEvent func(Event) error, onError func(error)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events():
			if !ok {
				return nil
			}
			if err := onEvent(event); err != nil {
				return err
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
