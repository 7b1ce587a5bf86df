package vtscreen

import "climux/internal/vtmodel"

// scrollRegionUp scrolls rows [scrollTop, scrollBottom] up by one,
// pushing the displaced top row to scrollback if the region starts
// at row 0 (matches real terminals: only rows
// leaving the primary grid's top are historical).
func (s *Screen) scrollRegionUp() {
	if s.scrollTop == 0 {
		s.pushScrollback(s.grid[s.scrollTop])
	}
	copy(s.grid[s.scrollTop:s.scrollBottom], s.grid[s.scrollTop+1:s.scrollBottom+1])
	s.grid[s.scrollBottom] = blankRow(s.size.Cols)
}

// scrollRegionDown scrolls rows [scrollTop, scrollBottom] down by one.
func (s *Screen) scrollRegionDown() {
	copy(s.grid[s.scrollTop+1:s.scrollBottom+1], s.grid[s.scrollTop:s.scrollBottom])
	s.grid[s.scrollTop] = blankRow(s.size.Cols)
}

// scrollRegionUpN / scrollRegionDownN apply the scroll n times (SU/SD).
func (s *Screen) scrollRegionUpN(n int) {
	for i := 0; i < n; i++ {
		s.scrollRegionUp()
	}
}

func (s *Screen) scrollRegionDownN(n int) {
	for i := 0; i < n; i++ {
		s.scrollRegionDown()
	}
}

// lineFeed moves the cursor down one row, scrolling the region if
// already at its bottom.
func (s *Screen) lineFeed() {
	if s.cursor.Row == s.scrollBottom {
		s.scrollRegionUp()
		return
	}
	if s.cursor.Row < s.size.Rows-1 {
		s.cursor.Row++
	}
}

// reverseLineFeed moves the cursor up one row, scrolling the region
// down if already at its top (ESC M / RI).
func (s *Screen) reverseLineFeed() {
	if s.cursor.Row == s.scrollTop {
		s.scrollRegionDown()
		return
	}
	if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}

// insertLines inserts n blank lines at the cursor row within the
// scroll region, pushing lines below down and off the bottom.
func (s *Screen) insertLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(s.grid[s.cursor.Row+1:s.scrollBottom+1], s.grid[s.cursor.Row:s.scrollBottom])
		s.grid[s.cursor.Row] = blankRow(s.size.Cols)
	}
}

// deleteLines removes n lines at the cursor row within the scroll
// region, pulling lines below up and padding the bottom with blanks.
func (s *Screen) deleteLines(n int) {
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		copy(s.grid[s.cursor.Row:s.scrollBottom], s.grid[s.cursor.Row+1:s.scrollBottom+1])
		s.grid[s.scrollBottom] = blankRow(s.size.Cols)
	}
}

// insertChars inserts n blank cells at the cursor column, shifting the
// rest of the row right and discarding overflow.
func (s *Screen) insertChars(n int) {
	row := s.grid[s.cursor.Row]
	col := int(s.cursor.Col)
	for i := 0; i < n && col < len(row); i++ {
		copy(row[col+1:], row[col:len(row)-1])
		row[col] = vtmodel.BlankCell
	}
}

// deleteChars removes n cells at the cursor column, shifting the rest
// of the row left and padding the end with blanks.
func (s *Screen) deleteChars(n int) {
	row := s.grid[s.cursor.Row]
	col := int(s.cursor.Col)
	for i := 0; i < n && col < len(row); i++ {
		copy(row[col:len(row)-1], row[col+1:])
		row[len(row)-1] = vtmodel.BlankCell
	}
}

// eraseChars blanks n cells at the cursor column without shifting.
func (s *Screen) eraseChars(n int) {
	row := s.grid[s.cursor.Row]
	end := int(s.cursor.Col) + n
	if end > len(row) {
		end = len(row)
	}
	for c := int(s.cursor.Col); c < end; c++ {
		row[c] = vtmodel.BlankCell
	}
}

// eraseInLine implements EL (CSI K).
func (s *Screen) eraseInLine(mode int) {
	row := s.grid[s.cursor.Row]
	switch mode {
	case 0:
		for c := int(s.cursor.Col); c < len(row); c++ {
			row[c] = vtmodel.BlankCell
		}
	case 1:
		for c := 0; c <= int(s.cursor.Col) && c < len(row); c++ {
			row[c] = vtmodel.BlankCell
		}
	case 2:
		s.grid[s.cursor.Row] = blankRow(s.size.Cols)
	}
}

// eraseInDisplay implements ED (CSI J).
func (s *Screen) eraseInDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseInLine(0)
		for r := int(s.cursor.Row) + 1; r < len(s.grid); r++ {
			s.grid[r] = blankRow(s.size.Cols)
		}
	case 1:
		s.eraseInLine(1)
		for r := 0; r < int(s.cursor.Row); r++ {
			s.grid[r] = blankRow(s.size.Cols)
		}
	case 2:
		for r := range s.grid {
			s.grid[r] = blankRow(s.size.Cols)
		}
	}
}

// printRune writes a single decoded rune at the cursor using the
// current SGR attributes and advances the cursor per the wrap rules.
func (s *Screen) printRune(r rune) {
	width := runeWidth(r)
	if width == 2 {
		s.printWide(r)
		return
	}
	s.writeCellAndAdvance(r, 1)
}

func (s *Screen) printWide(r rune) {
	if s.cursor.Col+1 >= s.size.Cols {
		if !s.autowrap {
			// No room and no wrap: overwrite in place with a blank,
			// matching the narrow-write-at-last-column behavior.
			s.setCell(s.cursor.Row, s.cursor.Col, vtmodel.BlankCell)
			return
		}
		s.setCell(s.cursor.Row, s.cursor.Col, vtmodel.BlankCell)
		s.wrapToNextLine()
	}
	cell := s.curAttr
	cell.Ch = r
	cell.Width = 2
	s.setCell(s.cursor.Row, s.cursor.Col, cell)
	cont := s.curAttr
	cont.Ch = ' '
	cont.Width = 0
	s.setCell(s.cursor.Row, s.cursor.Col+1, cont)
	s.advanceCursor(2)
}

func (s *Screen) writeCellAndAdvance(r rune, width uint8) {
	if s.cursor.Col >= s.size.Cols {
		if s.autowrap {
			s.wrapToNextLine()
		} else {
			s.cursor.Col = s.size.Cols - 1
		}
	}
	cell := s.curAttr
	cell.Ch = r
	cell.Width = width
	s.setCell(s.cursor.Row, s.cursor.Col, cell)
	s.advanceCursor(width)
}

func (s *Screen) setCell(row, col uint16, cell vtmodel.Cell) {
	if int(row) >= len(s.grid) || int(col) >= len(s.grid[row]) {
		return
	}
	s.grid[row][col] = cell
}

func (s *Screen) advanceCursor(width uint8) {
	s.cursor.Col += uint16(width)
	if s.cursor.Col >= s.size.Cols {
		if s.autowrap {
			s.wrapToNextLine()
		} else {
			s.cursor.Col = s.size.Cols - 1
		}
	}
}

func (s *Screen) wrapToNextLine() {
	s.cursor.Col = 0
	if s.cursor.Row == s.scrollBottom {
		s.scrollRegionUp()
		return
	}
	if s.cursor.Row < s.size.Rows-1 {
		s.cursor.Row++
	}
}

// runeWidth reports the terminal cell width of r: 2 for East Asian
// Wide/Fullwidth characters, 1 otherwise. Non-spacing combining marks
// are not distinguished and also report 1, since combining is out of
// the spec's documented subset.
func runeWidth(r rune) int {
	if isWide(r) {
		return 2
	}
	return 1
}

// isWide approximates Unicode East Asian Width "Wide"/"Fullwidth"
// ranges relevant to CJK terminal output.
func isWide(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F: // Hangul Jamo
		return true
	case r >= 0x2E80 && r <= 0xA4CF && r != 0x303F: // CJK radicals..Yi
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul syllables
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK compatibility ideographs
		return true
	case r >= 0xFF00 && r <= 0xFF60: // fullwidth forms
		return true
	case r >= 0xFFE0 && r <= 0xFFE6:
		return true
	case r >= 0x20000 && r <= 0x3FFFD: // supplementary ideographic planes
		return true
	default:
		return false
	}
}
