// Package vtmodel holds the value types shared by the screen engine,
// session manager, and input translator: terminal identity and size,
// cell colors and attributes, cursor position, and the notification
// and status tagged unions.
package vtmodel

import "fmt"

// TerminalId identifies a session for the lifetime of the process.
// Ids are monotonically increasing and never reused.
type TerminalId uint64

func (id TerminalId) String() string {
	return fmt.Sprintf("%d", uint64(id))
}

// TerminalSize is a terminal's dimensions in character cells.
type TerminalSize struct {
	Cols uint16
	Rows uint16
}

// ColorKind tags a Color's representation.
type ColorKind int

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is the fg/bg color of a Cell: the terminal default, one of the
// 256 indexed palette entries, or a 24-bit RGB triple.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// DefaultColor is the zero-value Color (terminal default).
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds an indexed-palette Color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB builds a 24-bit Color.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Cell is a single grid position: a printable scalar with its style.
// Width is 1 for a normal cell, 2 for the left half of a wide (CJK)
// glyph, and 0 for the right-half continuation placeholder that must
// immediately follow a width-2 cell in the same row.
type Cell struct {
	Ch            rune
	Fg, Bg        Color
	Bold          bool
	Underline     bool
	Italic        bool
	Dim           bool
	Reverse       bool
	Strikethrough bool
	Hidden        bool
	Width         uint8
}

// BlankCell is a cell holding a space with default attributes.
var BlankCell = Cell{Ch: ' ', Width: 1}

// CursorPos is a zero-indexed (row, col) position within a grid.
type CursorPos struct {
	Row uint16
	Col uint16
}

// CursorStyle enumerates the DECSCUSR cursor shapes.
type CursorStyle int

const (
	CursorDefaultUserShape CursorStyle = iota
	CursorBlinkingBlock
	CursorSteadyBlock
	CursorBlinkingUnderscore
	CursorSteadyUnderscore
	CursorBlinkingBar
	CursorSteadyBar
)

// NotificationKind tags a NotificationEvent.
type NotificationKind int

const (
	NotificationBell NotificationKind = iota
	NotificationOsc9
	NotificationOsc777
)

// NotificationEvent is a child-initiated event queued for desktop
// delivery: a terminal bell, an OSC 9 message, or an OSC 777 title+body.
type NotificationEvent struct {
	Kind    NotificationKind
	Message string // Osc9
	Title   string // Osc777
	Body    string // Osc777
}

// Summary renders a one-line human summary of the event.
func (e NotificationEvent) Summary() string {
	switch e.Kind {
	case NotificationBell:
		return "Task completed (bell)"
	case NotificationOsc9:
		return e.Message
	case NotificationOsc777:
		return e.Title + ": " + e.Body
	default:
		return ""
	}
}

// Parts projects the event into a (title, body) pair suitable for a
// desktop notification backend.
func (e NotificationEvent) Parts() (title, body string) {
	switch e.Kind {
	case NotificationBell:
		return "CLI Manager", "Task completed (bell)"
	case NotificationOsc9:
		return "CLI Manager", e.Message
	case NotificationOsc777:
		return e.Title, e.Body
	default:
		return "CLI Manager", ""
	}
}

// TerminalStatus is the lifecycle state of a child process. Once
// Exited, a terminal never returns to Running.
type TerminalStatus struct {
	Exited   bool
	ExitCode int32 // valid only if Exited
}

// Running reports the still-alive sentinel status.
func Running() TerminalStatus { return TerminalStatus{} }

// Exited reports a terminated status with the given exit code.
func Exited(code int32) TerminalStatus { return TerminalStatus{Exited: true, ExitCode: code} }

// Icon is the sidebar glyph for the status.
func (s TerminalStatus) Icon() string {
	if s.Exited {
		return "✗"
	}
	return "●"
}

// Text is the sidebar label for the status.
func (s TerminalStatus) Text() string {
	if s.Exited {
		return fmt.Sprintf("exited (%d)", s.ExitCode)
	}
	return "running"
}
