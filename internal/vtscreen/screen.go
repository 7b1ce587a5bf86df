// Package vtscreen implements the VT-compatible screen emulator: a
// per-terminal cell grid fed by a child's raw byte stream, with
// scrollback, alternate-screen support, and a notification FIFO.
//
// Byte-stream parsing (CSI/OSC/ESC/UTF-8 decoding) is delegated to
// github.com/danielgatis/go-ansicode's Decoder; Screen implements
// ansicode.Handler and the methods in handler.go turn parsed
// operations into grid/scrollback/alt-screen mutations. A small
// separate scan in oscnotify.go watches the same byte stream for the
// nonstandard OSC 9 / OSC 777 notification sequences, which have no
// counterpart in ansicode.Handler.
package vtscreen

import (
	"errors"
	"fmt"

	"github.com/danielgatis/go-ansicode"

	"climux/internal/vtmodel"
)

// ErrScreenNotFound is returned by Manager operations that reference
// an unknown TerminalId.
var ErrScreenNotFound = errors.New("vtscreen: screen not found")

// NotFoundError wraps ErrScreenNotFound with the offending id so
// callers can recover it with errors.As.
type NotFoundError struct {
	ID vtmodel.TerminalId
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("vtscreen: screen not found: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrScreenNotFound }

// defaultMaxScrollback is used only when a caller asks for a
// negative cap (a cap of 0 disables scrollback); config.Default() is the normal source of the real
// value (config.MaxScrollbackLines).
const defaultMaxScrollback = 10000

// savedCursorState is what ansicode's unified SaveCursorPosition /
// RestoreCursorPosition pair round-trips: the cursor position plus
// the full SGR attribute template. go-ansicode does not distinguish
// DECSC/DECRC (ESC 7/8) from SCP/RCP (CSI s/u) -- both land on this
// one slot, matching danielgatis-go-headless-term's single
// t.savedCursor field.
type savedCursorState struct {
	pos  vtmodel.CursorPos
	attr vtmodel.Cell
}

// Screen is the per-terminal emulator state. It implements
// ansicode.Handler; decoder.Write drives every method in handler.go.
type Screen struct {
	size vtmodel.TerminalSize

	grid    [][]vtmodel.Cell
	cursor  vtmodel.CursorPos
	curAttr vtmodel.Cell // template for the next printed cell (fg/bg/bold/...)

	savedCursor *savedCursorState

	scrollTop    uint16
	scrollBottom uint16

	cursorVisible       bool
	autowrap            bool
	applicationCursor   bool
	bracketedPaste      bool
	isAlternateScreen   bool
	cursorStyle         vtmodel.CursorStyle
	title               string
	cwd                 string
	newOutputWhileSrlld bool

	notifications []vtmodel.NotificationEvent

	scrollback    [][]vtmodel.Cell
	maxScrollback int
	scrollOffset  int

	// state preserved across the alternate-screen boundary
	savedPrimaryGrid         [][]vtmodel.Cell
	savedPrimaryCursor       vtmodel.CursorPos
	savedPrimaryScrollTop    uint16
	savedPrimaryScrollBottom uint16

	// OSC 9 / OSC 777 pre-scan state; see oscnotify.go.
	oscState oscScanState
	oscBuf   []byte

	decoder *ansicode.Decoder
}

// NewScreen allocates a blank screen of the given size. maxScrollback
// caps the number of retained scrollback rows; 0 disables scrollback
// entirely, and a negative (unset) value falls back to
// defaultMaxScrollback.
func NewScreen(size vtmodel.TerminalSize, maxScrollback int) *Screen {
	if maxScrollback < 0 {
		maxScrollback = defaultMaxScrollback
	}
	s := &Screen{
		size:          size,
		cursorVisible: true,
		autowrap:      true,
		maxScrollback: maxScrollback,
	}
	s.grid = blankGrid(size)
	s.scrollTop = 0
	s.scrollBottom = rowsOf(size) - 1
	s.curAttr = vtmodel.BlankCell
	s.decoder = ansicode.NewDecoder(s)
	return s
}

func rowsOf(size vtmodel.TerminalSize) uint16 { return size.Rows }

func blankGrid(size vtmodel.TerminalSize) [][]vtmodel.Cell {
	g := make([][]vtmodel.Cell, size.Rows)
	for r := range g {
		g[r] = blankRow(size.Cols)
	}
	return g
}

func blankRow(cols uint16) []vtmodel.Cell {
	row := make([]vtmodel.Cell, cols)
	for i := range row {
		row[i] = vtmodel.BlankCell
	}
	return row
}

// Process feeds a chunk of raw child output through the decoder. The
// OSC 9/777 pre-scan runs over the same bytes in parallel; it does not
// consume or gate what reaches the decoder.
func (s *Screen) Process(data []byte) {
	s.scanNotifications(data)
	s.decoder.Write(data)
}

// Size returns the current terminal size.
func (s *Screen) Size() vtmodel.TerminalSize { return s.size }

// Cursor returns the current cursor position.
func (s *Screen) Cursor() vtmodel.CursorPos { return s.cursor }

// CursorVisible reports the DECTCEM state.
func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// CursorStyle reports the DECSCUSR-selected cursor shape.
func (s *Screen) CursorStyle() vtmodel.CursorStyle { return s.cursorStyle }

// ApplicationCursorKeys reports the DECCKM state.
func (s *Screen) ApplicationCursorKeys() bool { return s.applicationCursor }

// BracketedPaste reports whether bracketed paste mode is enabled.
func (s *Screen) BracketedPaste() bool { return s.bracketedPaste }

// IsAlternateScreen reports whether the alternate grid is active.
func (s *Screen) IsAlternateScreen() bool { return s.isAlternateScreen }

// Title returns the most recently set window title, if any.
func (s *Screen) Title() (string, bool) { return s.title, s.title != "" }

// Cwd returns the most recently OSC-7-reported working directory.
func (s *Screen) Cwd() (string, bool) { return s.cwd, s.cwd != "" }

// clampCursor ensures the cursor is within [0,rows) x [0,cols).
func (s *Screen) clampCursor() {
	if s.cursor.Row >= s.size.Rows {
		s.cursor.Row = s.size.Rows - 1
	}
	if s.cursor.Col >= s.size.Cols {
		s.cursor.Col = s.size.Cols - 1
	}
}

// DrainNotifications returns and clears the pending notification FIFO.
func (s *Screen) DrainNotifications() []vtmodel.NotificationEvent {
	out := s.notifications
	s.notifications = nil
	return out
}

func (s *Screen) enqueueNotification(ev vtmodel.NotificationEvent) {
	s.notifications = append(s.notifications, ev)
}

// Resize grows/shrinks the grid in place. New rows are blank; removed
// rows' content is discarded (not pushed to scrollback, per spec). The
// cursor is clamped and the scroll region resets to the full screen.
func (s *Screen) Resize(size vtmodel.TerminalSize) {
	newGrid := make([][]vtmodel.Cell, size.Rows)
	for r := range newGrid {
		if r < len(s.grid) {
			newGrid[r] = resizeRow(s.grid[r], size.Cols)
		} else {
			newGrid[r] = blankRow(size.Cols)
		}
	}
	s.grid = newGrid
	s.size = size
	s.scrollTop = 0
	s.scrollBottom = size.Rows - 1
	s.clampCursor()
}

func resizeRow(row []vtmodel.Cell, cols uint16) []vtmodel.Cell {
	out := make([]vtmodel.Cell, cols)
	for i := range out {
		if i < len(row) {
			out[i] = row[i]
		} else {
			out[i] = vtmodel.BlankCell
		}
	}
	return out
}

// GetCells returns a view of the live grid (scrollOffset 0) or a
// history-shifted view at the current scrollback offset.
func (s *Screen) GetCells() [][]vtmodel.Cell {
	if s.scrollOffset == 0 {
		return s.grid
	}
	return s.historyView(s.scrollOffset)
}

// historyView composes the view shifted `offset` rows toward history:
// scrollback rows in chronological order starting `offset` rows back,
// followed by the head of the live grid, truncated to keep the total
// row count constant.
func (s *Screen) historyView(offset int) [][]vtmodel.Cell {
	if offset > len(s.scrollback) {
		offset = len(s.scrollback)
	}
	start := len(s.scrollback) - offset
	histRows := s.scrollback[start:]
	if len(histRows) > len(s.grid) {
		histRows = histRows[:len(s.grid)]
	}
	out := make([][]vtmodel.Cell, 0, len(s.grid))
	out = append(out, histRows...)
	remaining := len(s.grid) - len(histRows)
	if remaining > 0 {
		out = append(out, s.grid[:remaining]...)
	}
	return out
}

// GetRowCells returns a single row by absolute index: rows
// [0, len(scrollback)) address history, and the remainder address the
// live grid. Returns nil if out of range.
func (s *Screen) GetRowCells(absolute int) []vtmodel.Cell {
	if absolute < 0 {
		return nil
	}
	if absolute < len(s.scrollback) {
		return s.scrollback[absolute]
	}
	liveIdx := absolute - len(s.scrollback)
	if liveIdx >= len(s.grid) {
		return nil
	}
	return s.grid[liveIdx]
}

// ScrollbackOffset returns the current scrollback offset (0 = live).
func (s *Screen) ScrollbackOffset() int { return s.scrollOffset }

// MaxScrollback returns the number of stored scrollback rows.
func (s *Screen) MaxScrollback() int { return len(s.scrollback) }

// SetScrollbackOffset clamps and sets the scrollback offset. Returning
// to offset 0 clears the new-output-while-scrolled flag.
func (s *Screen) SetScrollbackOffset(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.scrollback) {
		n = len(s.scrollback)
	}
	s.scrollOffset = n
	if n == 0 {
		s.newOutputWhileSrlld = false
	}
}

// NewOutputWhileScrolled reports whether rows have been pushed to
// scrollback since the user scrolled away from the live view.
func (s *Screen) NewOutputWhileScrolled() bool { return s.newOutputWhileSrlld }

func (s *Screen) pushScrollback(row []vtmodel.Cell) {
	if s.isAlternateScreen {
		return
	}
	cp := make([]vtmodel.Cell, len(row))
	copy(cp, row)
	s.scrollback = append(s.scrollback, cp)
	if len(s.scrollback) > s.maxScrollback {
		trim := len(s.scrollback) - s.maxScrollback
		s.scrollback = s.scrollback[trim:]
	}
	if s.scrollOffset > 0 {
		s.newOutputWhileSrlld = true
	}
}

// SearchMatch is one hit from SearchScrollback.
type SearchMatch struct {
	Row      int
	ColStart int
	ColEnd   int
}

// SearchScrollback scans every stored row plus the live grid for query
// as a literal substring of the row's printable characters, returning
// matches in absolute-row order.
func (s *Screen) SearchScrollback(query string) []SearchMatch {
	if query == "" {
		return nil
	}
	var matches []SearchMatch
	total := len(s.scrollback) + len(s.grid)
	for abs := 0; abs < total; abs++ {
		row := s.GetRowCells(abs)
		if row == nil {
			continue
		}
		matches = append(matches, searchRow(abs, row, query)...)
	}
	return matches
}

func searchRow(absRow int, row []vtmodel.Cell, query string) []SearchMatch {
	runes := make([]rune, len(row))
	for i, c := range row {
		runes[i] = c.Ch
	}
	qRunes := []rune(query)
	var out []SearchMatch
	for start := 0; start+len(qRunes) <= len(runes); start++ {
		if matchesAt(runes, qRunes, start) {
			out = append(out, SearchMatch{Row: absRow, ColStart: start, ColEnd: start + len(qRunes)})
		}
	}
	return out
}

func matchesAt(text, query []rune, start int) bool {
	for i, r := range query {
		if text[start+i] != r {
			return false
		}
	}
	return true
}
