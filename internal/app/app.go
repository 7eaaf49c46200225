// Package app hosts the interactive viewer: a terminal event loop that
// feeds cursor moves and edits to an engine and paints its annotated
// lines and transient highlights.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/dshills/linemark/internal/engine"
	"github.com/dshills/linemark/internal/logging"
	"github.com/dshills/linemark/internal/renderer/backend"
)

// Options configures the application.
type Options struct {
	// Path is the file shown in the status line and written by save.
	Path string

	// TabWidth is the display width of a tab stop. Default: 4
	TabWidth int

	// LineNumbers enables the line number gutter.
	LineNumbers bool

	// Logger receives debug output. Default: discard.
	Logger *log.Logger
}

// Application is the viewer. It owns the screen and drives one engine.
type Application struct {
	mu sync.Mutex

	backend backend.Backend
	engine  *engine.Engine
	logger  *log.Logger
	opts    Options

	// View state
	width, height int
	top, left     int
	goalCol       int
	modified      bool
	status        string

	running atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// New creates an application drawing on b and driving eng.
func New(b backend.Backend, eng *engine.Engine, opts Options) (*Application, error) {
	if b == nil {
		return nil, &InitError{Component: "backend", Err: errors.New("nil backend")}
	}
	if eng == nil {
		return nil, &InitError{Component: "engine", Err: errors.New("nil engine")}
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Application{
		backend: b,
		engine:  eng,
		logger:  logger.With(logging.FieldPath, opts.Path),
		opts:    opts,
		goalCol: -1,
		done:    make(chan struct{}),
	}, nil
}

// Run initializes the screen and processes events until quit, Shutdown or
// ctx cancellation.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.mu.Lock()
	app.width, app.height = app.backend.Size()
	app.scrollLocked()
	app.drawLocked()
	app.mu.Unlock()

	events := app.startInputPolling()
	defer app.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.HandleEvent(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// Shutdown stops a running event loop.
func (app *Application) Shutdown() {
	app.stop()
}

func (app *Application) stop() {
	app.once.Do(func() {
		close(app.done)
		// Unblock the polling goroutine.
		app.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	})
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Engine returns the engine being viewed.
func (app *Application) Engine() *engine.Engine {
	return app.engine
}

// Modified reports whether the text was edited since the last save.
func (app *Application) Modified() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.modified
}

// Status returns the current status message.
func (app *Application) Status() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.status
}

// startInputPolling moves blocking PollEvent calls onto a goroutine.
// The goroutine exits once done is closed and PollEvent returns.
func (app *Application) startInputPolling() <-chan backend.Event {
	events := make(chan backend.Event, 64)

	go func() {
		defer close(events)
		for {
			ev := app.backend.PollEvent()
			select {
			case <-app.done:
				return
			default:
			}
			if ev.Type == backend.EventInterrupt {
				continue
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	return events
}
