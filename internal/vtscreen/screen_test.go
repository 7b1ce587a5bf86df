package vtscreen

import (
	"testing"

	"climux/internal/vtmodel"
)

func sz(cols, rows uint16) vtmodel.TerminalSize {
	return vtmodel.TerminalSize{Cols: cols, Rows: rows}
}

// S1: SGR + text.
func TestSGRAndText(t *testing.T) {
	s := NewScreen(sz(10, 3), 10000)
	s.Process([]byte("\x1b[1;31mX\x1b[0mY"))

	c0 := s.grid[0][0]
	if c0.Ch != 'X' || c0.Fg.Kind != vtmodel.ColorIndexed || c0.Fg.Index != 1 || !c0.Bold {
		t.Fatalf("cell(0,0) = %+v, want ch=X fg=Indexed(1) bold=true", c0)
	}
	c1 := s.grid[0][1]
	if c1.Ch != 'Y' || c1.Fg.Kind != vtmodel.ColorDefault || c1.Bold {
		t.Fatalf("cell(0,1) = %+v, want ch=Y fg=Default bold=false", c1)
	}
}

// S2: scrolling via LF at bottom.
func TestScrollViaLF(t *testing.T) {
	s := NewScreen(sz(10, 3), 10000)
	s.Process([]byte("A\r\nB\r\nC\r\n"))

	rowText := func(r int) string {
		return string(s.grid[r][0].Ch)
	}
	if rowText(0) != "B" || rowText(1) != "C" {
		t.Fatalf("rows = %q %q, want B C", rowText(0), rowText(1))
	}
	if s.grid[2][0].Ch != ' ' && s.grid[2][0].Ch != 0 {
		t.Fatalf("row 2 should be blank, got %q", s.grid[2][0].Ch)
	}
	if s.cursor != (vtmodel.CursorPos{Row: 2, Col: 0}) {
		t.Fatalf("cursor = %+v, want (2,0)", s.cursor)
	}
}

// S3: alternate screen round-trip.
func TestAlternateScreenRoundTrip(t *testing.T) {
	s := NewScreen(sz(10, 5), 10000)
	s.Process([]byte("ABC"))
	s.Process([]byte("\x1b[?1049h"))

	if s.grid[0][0].Ch != ' ' && s.grid[0][0].Ch != 0 {
		t.Fatalf("alt screen should be blank, got %q", s.grid[0][0].Ch)
	}
	if s.cursor != (vtmodel.CursorPos{}) {
		t.Fatalf("cursor on alt entry = %+v, want (0,0)", s.cursor)
	}

	s.Process([]byte("XYZ"))
	s.Process([]byte("\x1b[?1049l"))

	got := string(s.grid[0][0].Ch) + string(s.grid[0][1].Ch) + string(s.grid[0][2].Ch)
	if got != "ABC" {
		t.Fatalf("row 0 after restore = %q, want ABC", got)
	}
	if s.cursor != (vtmodel.CursorPos{Row: 0, Col: 3}) {
		t.Fatalf("cursor after restore = %+v, want (0,3)", s.cursor)
	}
}

// S4: OSC 7.
func TestOSC7UpdatesCwd(t *testing.T) {
	s := NewScreen(sz(20, 5), 10000)
	s.Process([]byte("\x1b]7;file://host/my%20dir\x1b\\"))
	cwd, ok := s.Cwd()
	if !ok || cwd != "/my dir" {
		t.Fatalf("cwd = %q, ok=%v, want /my dir", cwd, ok)
	}
}

// Invariant 2: scroll_top < scroll_bottom <= rows-1.
func TestScrollRegionInvariant(t *testing.T) {
	s := NewScreen(sz(10, 5), 10000)
	s.Process([]byte("\x1b[2;4r"))
	if !(s.scrollTop < s.scrollBottom && s.scrollBottom <= s.size.Rows-1) {
		t.Fatalf("scroll region invalid: top=%d bottom=%d rows=%d", s.scrollTop, s.scrollBottom, s.size.Rows)
	}
	// Invalid region (top >= bottom) must be ignored.
	before := s.scrollTop
	s.Process([]byte("\x1b[4;2r"))
	if s.scrollTop != before {
		t.Fatalf("invalid DECSTBM should be ignored, scrollTop changed to %d", s.scrollTop)
	}
}

// Invariant 3: cursor stays within bounds after any transition.
func TestCursorClampedAfterResize(t *testing.T) {
	s := NewScreen(sz(10, 5), 10000)
	s.cursor = vtmodel.CursorPos{Row: 4, Col: 9}
	s.Resize(sz(5, 3))
	if s.cursor.Row >= s.size.Rows || s.cursor.Col >= s.size.Cols {
		t.Fatalf("cursor out of bounds after resize: %+v size=%+v", s.cursor, s.size)
	}
}

// Invariant 4: every width-2 cell is followed by a blank width-0 cell.
func TestWideCharContinuation(t *testing.T) {
	s := NewScreen(sz(10, 3), 10000)
	s.Process([]byte("\xe4\xb8\xad")) // 中, East Asian Wide
	if s.grid[0][0].Width != 2 {
		t.Fatalf("expected width-2 cell at (0,0), got width=%d", s.grid[0][0].Width)
	}
	if s.grid[0][1].Width != 0 || s.grid[0][1].Ch != ' ' {
		t.Fatalf("expected blank width-0 continuation at (0,1), got %+v", s.grid[0][1])
	}
}

// Invariant 5: once Exited, status never changes — this invariant is
// owned by sessionmgr, not vtscreen; see sessionmgr's tests.

// Chunk-split CSI sequence must still apply once completed.
func TestProcessAcrossChunkBoundary(t *testing.T) {
	s := NewScreen(sz(10, 3), 10000)
	s.Process([]byte("\x1b[1"))
	s.Process([]byte(";31mX"))
	c0 := s.grid[0][0]
	if c0.Ch != 'X' || !c0.Bold || c0.Fg.Index != 1 {
		t.Fatalf("split CSI not applied: %+v", c0)
	}
}

// Multi-byte UTF-8 rune split across two Process calls.
func TestProcessSplitUTF8(t *testing.T) {
	s := NewScreen(sz(10, 3), 10000)
	b := []byte("中")
	s.Process(b[:1])
	s.Process(b[1:])
	if s.grid[0][0].Ch != '中' {
		t.Fatalf("split utf8 rune not decoded, got %q", s.grid[0][0].Ch)
	}
}

func TestScrollbackOffsetClamp(t *testing.T) {
	s := NewScreen(sz(5, 2), 10000)
	for i := 0; i < 20; i++ {
		s.Process([]byte("x\r\n"))
	}
	max := s.MaxScrollback()
	s.SetScrollbackOffset(max + 100)
	if s.ScrollbackOffset() != max {
		t.Fatalf("offset = %d, want clamp to %d", s.ScrollbackOffset(), max)
	}
	s.SetScrollbackOffset(0)
	if s.NewOutputWhileScrolled() {
		t.Fatalf("returning to offset 0 should clear new-output flag")
	}
}
