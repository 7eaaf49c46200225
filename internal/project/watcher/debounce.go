package watcher

import (
	"sync"
	"time"
)

// DebouncedWatcher wraps a Watcher and coalesces the burst of events a
// single save produces (truncate, write, chmod, or create after a rename)
// into one event per file. A burst made only of OpChmod is discarded.
type DebouncedWatcher struct {
	inner Watcher

	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*burst
	closed  bool
	dropped int

	events chan Event
	errors chan error
	done   chan struct{}
	wg     sync.WaitGroup
}

// burst is an event accumulating until its file goes quiet.
type burst struct {
	event Event
	timer *time.Timer
}

// NewDebouncedWatcher wraps inner. A non-positive delay selects the
// default from DefaultConfig.
func NewDebouncedWatcher(inner Watcher, delay time.Duration) *DebouncedWatcher {
	if delay <= 0 {
		delay = DefaultConfig().DebounceDelay
	}

	dw := &DebouncedWatcher{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*burst),
		events:  make(chan Event, DefaultConfig().BufferSize),
		errors:  make(chan error, DefaultConfig().BufferSize),
		done:    make(chan struct{}),
	}

	dw.wg.Add(1)
	go dw.loop()
	return dw
}

func (dw *DebouncedWatcher) Watch(path string) error   { return dw.inner.Watch(path) }
func (dw *DebouncedWatcher) Unwatch(path string) error { return dw.inner.Unwatch(path) }
func (dw *DebouncedWatcher) IsWatching(path string) bool {
	return dw.inner.IsWatching(path)
}

// Events returns the coalesced event channel.
func (dw *DebouncedWatcher) Events() <-chan Event { return dw.events }

// Errors returns errors forwarded from the inner watcher.
func (dw *DebouncedWatcher) Errors() <-chan error { return dw.errors }

// Close discards pending bursts, then closes the channels and the inner
// watcher.
func (dw *DebouncedWatcher) Close() error {
	dw.mu.Lock()
	if dw.closed {
		dw.mu.Unlock()
		return nil
	}
	dw.closed = true
	close(dw.done)
	for path, b := range dw.pending {
		b.timer.Stop()
		delete(dw.pending, path)
	}
	dw.mu.Unlock()

	dw.wg.Wait()
	close(dw.events)
	close(dw.errors)
	return dw.inner.Close()
}

func (dw *DebouncedWatcher) loop() {
	defer dw.wg.Done()

	for {
		select {
		case <-dw.done:
			return
		case ev, ok := <-dw.inner.Events():
			if !ok {
				return
			}
			dw.add(ev)
		case err, ok := <-dw.inner.Errors():
			if !ok {
				return
			}
			select {
			case dw.errors <- err:
			default:
			}
		}
	}
}

// add merges ev into the pending burst for its path and restarts the quiet
// period.
func (dw *DebouncedWatcher) add(ev Event) {
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.closed {
		return
	}
	if b, ok := dw.pending[ev.Path]; ok {
		b.event.Op |= ev.Op
		b.event.Timestamp = ev.Timestamp
		b.timer.Reset(dw.delay)
		return
	}

	path := ev.Path
	dw.pending[path] = &burst{
		event: ev,
		timer: time.AfterFunc(dw.delay, func() { dw.emit(path) }),
	}
}

// emit delivers the burst for path, if still pending.
func (dw *DebouncedWatcher) emit(path string) {
	dw.mu.Lock()
	b, ok := dw.pending[path]
	if !ok || dw.closed {
		dw.mu.Unlock()
		return
	}
	delete(dw.pending, path)
	ev := b.event
	if ev.Op == OpChmod {
		dw.mu.Unlock()
		return
	}
	dw.mu.Unlock()

	select {
	case dw.events <- ev:
	case <-dw.done:
	default:
		dw.mu.Lock()
		dw.dropped++
		dw.mu.Unlock()
	}
}

// Flush delivers every pending burst immediately.
func (dw *DebouncedWatcher) Flush() {
	dw.mu.Lock()
	paths := make([]string, 0, len(dw.pending))
	for path, b := range dw.pending {
		b.timer.Stop()
		paths = append(paths, path)
	}
	dw.mu.Unlock()

	for _, path := range paths {
		dw.emit(path)
	}
}

// SetDelay changes the quiet period used for bursts started afterwards.
func (dw *DebouncedWatcher) SetDelay(delay time.Duration) {
	dw.mu.Lock()
	dw.delay = delay
	dw.mu.Unlock()
}

// PendingCount returns the number of bursts waiting to be delivered.
func (dw *DebouncedWatcher) PendingCount() int {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return len(dw.pending)
}

// Dropped returns how many events were lost to a full output channel.
func (dw *DebouncedWatcher) Dropped() int {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	return dw.dropped
}

var _ Watcher = (*DebouncedWatcher)(nil)
