package watcher

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{OpWrite | OpChmod, "WRITE|CHMOD"},
		{OpCreate | OpWrite | OpRename, "CREATE|WRITE|RENAME"},
		{0, "NONE"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestOpChanged(t *testing.T) {
	if !(OpWrite | OpChmod).Changed() {
		t.Error("WRITE|CHMOD should count as changed")
	}
	if OpChmod.Changed() || OpRemove.Changed() {
		t.Error("CHMOD and REMOVE alone are not content changes")
	}
	if !OpCreate.Changed() {
		t.Error("CREATE should count as changed")
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	WithDebounceDelay(time.Second)(&cfg)
	WithBufferSize(7)(&cfg)
	if cfg.DebounceDelay != time.Second || cfg.BufferSize != 7 {
		t.Errorf("options not applied: %+v", cfg)
	}
}

func TestRunDeliversUntilCancelled(t *testing.T) {
	inner := newFakeWatcher()
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan Event, 1)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, inner, func(ev Event) error {
			got <- ev
			return nil
		}, nil)
	}()

	inner.send("/a.c", OpWrite)
	select {
	case ev := <-got:
		if ev.Path != "/a.c" {
			t.Errorf("Path = %q", ev.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run err = %v, want context.Canceled", err)
	}
}

func TestRunStopsOnHandlerError(t *testing.T) {
	inner := newFakeWatcher()
	stop := errors.New("stop")
	inner.send("/a.c", OpWrite)

	err := Run(context.Background(), inner, func(Event) error { return stop }, nil)
	if !errors.Is(err, stop) {
		t.Errorf("Run err = %v, want stop", err)
	}
}

func TestRunReportsErrorsAndEndsOnClose(t *testing.T) {
	inner := newFakeWatcher()
	boom := errors.New("boom")
	inner.errors <- boom

	var seen error
	errCh := make(chan struct{})
	go func() {
		<-errCh
		inner.Close()
	}()

	err := Run(context.Background(), inner, func(Event) error { return nil }, func(e error) {
		seen = e
		close(errCh)
	})
	if err != nil {
		t.Errorf("Run err = %v, want nil after close", err)
	}
	if !errors.Is(seen, boom) {
		t.Errorf("onError got %v", seen)
	}
}
