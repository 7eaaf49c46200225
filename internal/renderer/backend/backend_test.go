package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/linemark/internal/renderer/core"
)

func TestMemorySetGetCell(t *testing.T) {
	m := NewMemory(10, 3)
	if err := m.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	cell := Cell{Rune: 'X', Style: core.NewStyle(core.ColorYellow)}
	m.SetCell(2, 1, cell)
	if got := m.GetCell(2, 1); got != cell {
		t.Errorf("GetCell = %+v, want %+v", got, cell)
	}

	m.SetCell(-1, 0, cell)
	m.SetCell(10, 0, cell)
	if got := m.GetCell(-1, 0); got != EmptyCell() {
		t.Errorf("off-screen GetCell = %+v", got)
	}

	m.SetCell(0, 0, Cell{Rune: 'a'})
	m.SetCell(1, 0, Cell{Rune: 'b'})
	if got := m.Row(0); got != "ab" {
		t.Errorf("Row(0) = %q, want %q", got, "ab")
	}

	m.Clear()
	if got := m.Row(1); got != "" {
		t.Errorf("Row(1) after Clear = %q", got)
	}
}

func TestMemoryCursorAndEvents(t *testing.T) {
	m := NewMemory(4, 4)
	m.Init()

	m.ShowCursor(1, 2)
	x, y, visible := m.CursorPosition()
	if x != 1 || y != 2 || !visible {
		t.Errorf("cursor = (%d,%d,%v)", x, y, visible)
	}
	m.HideCursor()
	if _, _, visible := m.CursorPosition(); visible {
		t.Error("cursor still visible")
	}

	m.PostEvent(RuneEvent('q'))
	ev := m.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("PollEvent = %+v", ev)
	}

	m.Resize(8, 2)
	ev = m.PollEvent()
	if ev.Type != EventResize || ev.Width != 8 || ev.Height != 2 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := m.Size(); w != 8 || h != 2 {
		t.Errorf("Size = %d,%d", w, h)
	}
}

func TestStyleConversionRoundTrip(t *testing.T) {
	styles := []core.Style{
		core.DefaultStyle(),
		core.NewStyle(core.ColorFromRGB(10, 20, 30)).Bold(),
		core.NewStyle(core.ColorDarkGreen).WithBackground(core.ColorGray).Italic(),
		{Foreground: core.ColorDefault, Background: core.ColorDarkBlue, Attributes: core.AttrUnderline | core.AttrReverse},
	}
	for _, s := range styles {
		if got := FromTcell(ToTcell(s)); got != s {
			t.Errorf("round trip of %+v = %+v", s, got)
		}
	}
}

func TestConvertEvent(t *testing.T) {
	ev, ok := convertEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone))
	if !ok || ev.Key != KeyRune || ev.Rune != 'z' {
		t.Errorf("rune event = %+v, %v", ev, ok)
	}

	ev, ok = convertEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	if !ok || ev.Key != KeyBackspace {
		t.Errorf("backspace event = %+v, %v", ev, ok)
	}

	ev, ok = convertEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift))
	if !ok || ev.Key != KeyLeft || !ev.Mod.Has(ModShift) {
		t.Errorf("shift-left event = %+v, %v", ev, ok)
	}

	if _, ok := convertEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("F5 should not convert")
	}

	ev, ok = convertEvent(tcell.NewEventResize(30, 7))
	if !ok || ev.Type != EventResize || ev.Width != 30 || ev.Height != 7 {
		t.Errorf("resize event = %+v, %v", ev, ok)
	}
}

func TestKeyMappingInverse(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyEnter, KeyBackspace, KeyDelete, KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd, KeyCtrlQ} {
		if got := convertKey(toTcellKey(k)); got != k {
			t.Errorf("convertKey(toTcellKey(%d)) = %d", k, got)
		}
	}
	if m := convertMod(toTcellMod(ModCtrl | ModAlt)); m != ModCtrl|ModAlt {
		t.Errorf("mod round trip = %d", m)
	}
}

func TestTerminalOnSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer term.Shutdown()
	screen.SetSize(20, 5)

	style := core.NewStyle(core.ColorFromRGB(1, 2, 3)).Bold()
	term.SetCell(3, 1, Cell{Rune: 'Q', Style: style})
	term.Show()

	got := term.GetCell(3, 1)
	if got.Rune != 'Q' {
		t.Errorf("rune = %q", got.Rune)
	}
	if got.Style != style {
		t.Errorf("style = %+v, want %+v", got.Style, style)
	}
	if got := term.GetCell(100, 100); got != EmptyCell() {
		t.Errorf("off-screen cell = %+v", got)
	}
}
