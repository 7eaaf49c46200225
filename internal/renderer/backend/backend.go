// Package backend provides the display surface the viewer draws on.
package backend

import "github.com/dshills/linemark/internal/renderer/core"

// Cell is one screen cell.
type Cell struct {
	Rune  rune
	Style core.Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: core.DefaultStyle()}
}

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	Key  Key
	Rune rune
	Mod  ModMask

	Width, Height int
}

// KeyEvent builds a key event for a special key.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a key event for a typed character.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// Key represents a keyboard key.
type Key int

// Keys understood by the viewer. Anything else converts to KeyNone.
const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlS
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// Backend is a drawable, event-producing screen.
type Backend interface {
	// Init prepares the screen. It must be called before anything else.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// Size returns the screen dimensions in cells.
	Size() (width, height int)

	// SetCell sets the cell at (x, y). Positions off screen are ignored.
	SetCell(x, y int, cell Cell)

	// GetCell returns the cell at (x, y), or EmptyCell off screen.
	GetCell(x, y int) Cell

	// Clear blanks the whole screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	ShowCursor(x, y int)
	HideCursor()

	// PollEvent blocks until the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event.
	PostEvent(event Event)
}

// Memory is an in-memory Backend for tests and headless rendering.
type Memory struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
	shows         int
}

// NewMemory creates a memory backend with the given dimensions.
func NewMemory(width, height int) *Memory {
	return &Memory{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
}

func (m *Memory) Init() error {
	m.resetCells()
	return nil
}

func (m *Memory) resetCells() {
	m.cells = make([][]Cell, m.height)
	for y := range m.cells {
		m.cells[y] = make([]Cell, m.width)
		for x := range m.cells[y] {
			m.cells[y][x] = EmptyCell()
		}
	}
}

func (m *Memory) Shutdown() {}

func (m *Memory) Size() (int, int) {
	return m.width, m.height
}

func (m *Memory) SetCell(x, y int, cell Cell) {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = cell
	}
}

func (m *Memory) GetCell(x, y int) Cell {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		return m.cells[y][x]
	}
	return EmptyCell()
}

func (m *Memory) Clear() {
	m.resetCells()
}

func (m *Memory) Show() { m.shows++ }

func (m *Memory) ShowCursor(x, y int) {
	m.cursorX, m.cursorY = x, y
	m.cursorVisible = true
}

func (m *Memory) HideCursor() {
	m.cursorVisible = false
}

func (m *Memory) PollEvent() Event {
	return <-m.events
}

// PostEvent queues event, dropping it when the queue is full.
func (m *Memory) PostEvent(event Event) {
	select {
	case m.events <- event:
	default:
	}
}

// Resize changes the dimensions, clears the screen and queues a resize event.
func (m *Memory) Resize(width, height int) {
	m.width, m.height = width, height
	m.resetCells()
	m.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// CursorPosition returns the cursor position and visibility.
func (m *Memory) CursorPosition() (x, y int, visible bool) {
	return m.cursorX, m.cursorY, m.cursorVisible
}

// Shows returns how many times Show was called.
func (m *Memory) Shows() int {
	return m.shows
}

// Row returns the runes of row y as a string, with trailing blanks trimmed.
func (m *Memory) Row(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	runes := make([]rune, 0, m.width)
	for _, c := range m.cells[y] {
		if c.Rune == 0 {
			continue
		}
		runes = append(runes, c.Rune)
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*Terminal)(nil)
)
