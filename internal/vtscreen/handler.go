package vtscreen

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"

	"climux/internal/osc7"
	"climux/internal/vtmodel"
)

// Screen implements ansicode.Handler: every method below is a
// callback the decoder invokes once it has fully parsed one
// operation from the byte stream. Each one is grounded on the
// matching callback in danielgatis-go-headless-term's handler.go,
// adapted to climux's grid/scrollback model (grid.go) instead of that
// repo's row-buffer model. Methods outside this spec's scope
// (clipboard, sixel, hyperlinks, kitty graphics, keyboard protocol
// stacks, ...) are no-ops, matching that repo's own NoopXXX providers
// for features it also leaves unconfigured.
var _ ansicode.Handler = (*Screen)(nil)

// Input prints one decoded rune at the cursor.
func (s *Screen) Input(r rune) { s.printRune(r) }

// LineFeed moves the cursor down one row, scrolling if at the bottom
// of the scroll region.
func (s *Screen) LineFeed() { s.lineFeed() }

// CarriageReturn moves the cursor to column 0.
func (s *Screen) CarriageReturn() { s.cursor.Col = 0 }

// Backspace moves the cursor one column left, stopping at column 0.
func (s *Screen) Backspace() {
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
}

// Bell queues a bell notification.
func (s *Screen) Bell() {
	s.enqueueNotification(vtmodel.NotificationEvent{Kind: vtmodel.NotificationBell})
}

// ClearLine implements EL (CSI K).
func (s *Screen) ClearLine(mode ansicode.LineClearMode) {
	switch mode {
	case ansicode.LineClearModeRight:
		s.eraseInLine(0)
	case ansicode.LineClearModeLeft:
		s.eraseInLine(1)
	case ansicode.LineClearModeAll:
		s.eraseInLine(2)
	}
}

// ClearScreen implements ED (CSI J). ClearModeSaved has no separate
// scrollback-only behavior, matching the reference handler's own
// placeholder ("not implemented for now" -- it also falls through to
// a full clear).
func (s *Screen) ClearScreen(mode ansicode.ClearMode) {
	switch mode {
	case ansicode.ClearModeBelow:
		s.eraseInDisplay(0)
	case ansicode.ClearModeAbove:
		s.eraseInDisplay(1)
	case ansicode.ClearModeAll, ansicode.ClearModeSaved:
		s.eraseInDisplay(2)
	}
}

// ClearTabs is a no-op: custom tab stops are not tracked, only the
// fixed every-8-columns default Tab uses.
func (s *Screen) ClearTabs(ansicode.TabulationClearMode) {}

// ClipboardLoad/ClipboardStore: no clipboard backend in scope.
func (s *Screen) ClipboardLoad(clipboard byte, terminator string) {}
func (s *Screen) ClipboardStore(clipboard byte, data []byte)      {}

// ConfigureCharset: alternate character sets (line-drawing, etc.) are
// out of scope.
func (s *Screen) ConfigureCharset(ansicode.CharsetIndex, ansicode.Charset) {}

// Decaln (DECALN, screen-alignment test) is out of scope.
func (s *Screen) Decaln() {}

// DeleteChars removes n cells at the cursor column (DCH).
func (s *Screen) DeleteChars(n int) { s.deleteChars(n) }

// DeleteLines removes n lines at the cursor row within the scroll
// region (DL); deleteLines itself no-ops when the cursor is outside
// the region.
func (s *Screen) DeleteLines(n int) { s.deleteLines(n) }

// DeviceStatus (DSR) is out of scope: Screen has no channel back to
// the child to write a response on.
func (s *Screen) DeviceStatus(n int) {}

// EraseChars blanks n cells at the cursor without shifting (ECH).
func (s *Screen) EraseChars(n int) { s.eraseChars(n) }

// Goto moves the cursor to an absolute (row, col); go-ansicode has
// already resolved these to 0-based before calling the handler.
func (s *Screen) Goto(row, col int) {
	s.cursor.Row = clampU16(row, 0, s.size.Rows-1)
	s.cursor.Col = clampU16(col, 0, s.size.Cols-1)
}

// GotoCol moves the cursor to an absolute column, keeping the row.
func (s *Screen) GotoCol(col int) { s.cursor.Col = clampU16(col, 0, s.size.Cols-1) }

// GotoLine moves the cursor to an absolute row, keeping the column.
func (s *Screen) GotoLine(row int) { s.cursor.Row = clampU16(row, 0, s.size.Rows-1) }

// HorizontalTabSet (custom tab stop) is out of scope.
func (s *Screen) HorizontalTabSet() {}

// IdentifyTerminal (DA) is out of scope: no response channel.
func (s *Screen) IdentifyTerminal(b byte) {}

// InsertBlank inserts n blank cells at the cursor column (ICH).
func (s *Screen) InsertBlank(n int) { s.insertChars(n) }

// InsertBlankLines inserts n blank lines at the cursor row within the
// scroll region (IL).
func (s *Screen) InsertBlankLines(n int) { s.insertLines(n) }

// MoveBackward moves the cursor left n columns (CUB).
func (s *Screen) MoveBackward(n int) {
	s.cursor.Col = clampU16(int(s.cursor.Col)-n, 0, s.size.Cols-1)
}

// MoveBackwardTabs moves left to the previous n tab stops (CBT).
func (s *Screen) MoveBackwardTabs(n int) { s.tabBackward(n) }

// MoveDown moves the cursor down n rows (CUD).
func (s *Screen) MoveDown(n int) {
	s.cursor.Row = clampU16(int(s.cursor.Row)+n, 0, s.size.Rows-1)
}

// MoveDownCr moves the cursor down n rows and to column 0 (CNL).
func (s *Screen) MoveDownCr(n int) {
	s.cursor.Row = clampU16(int(s.cursor.Row)+n, 0, s.size.Rows-1)
	s.cursor.Col = 0
}

// MoveForward moves the cursor right n columns (CUF).
func (s *Screen) MoveForward(n int) {
	s.cursor.Col = clampU16(int(s.cursor.Col)+n, 0, s.size.Cols-1)
}

// MoveForwardTabs moves right to the next n tab stops (CHT).
func (s *Screen) MoveForwardTabs(n int) { s.tabForward(n) }

// MoveUp moves the cursor up n rows (CUU).
func (s *Screen) MoveUp(n int) {
	s.cursor.Row = clampU16(int(s.cursor.Row)-n, 0, s.size.Rows-1)
}

// MoveUpCr moves the cursor up n rows and to column 0 (CPL).
func (s *Screen) MoveUpCr(n int) {
	s.cursor.Row = clampU16(int(s.cursor.Row)-n, 0, s.size.Rows-1)
	s.cursor.Col = 0
}

// Keyboard-protocol stack (Kitty keyboard protocol) is out of scope.
func (s *Screen) PopKeyboardMode(n int)                          {}
func (s *Screen) PushKeyboardMode(mode ansicode.KeyboardMode)     {}
func (s *Screen) ReportKeyboardMode()                             {}
func (s *Screen) SetKeyboardMode(ansicode.KeyboardMode, ansicode.KeyboardModeBehavior) {}

// Title stack (XTWINOPS 22/23) is out of scope; Title()/SetTitle
// cover the plain OSC 0/2 case.
func (s *Screen) PushTitle() {}
func (s *Screen) PopTitle()  {}

// APC/PM/SOS string handlers are out of scope (no provider hooks).
func (s *Screen) ApplicationCommandReceived(data []byte)  {}
func (s *Screen) PrivacyMessageReceived(data []byte)      {}
func (s *Screen) StartOfStringReceived(data []byte)       {}

// ReportModifyOtherKeys / SetModifyOtherKeys: modifyOtherKeys
// reporting is out of scope (no response channel).
func (s *Screen) ReportModifyOtherKeys()                  {}
func (s *Screen) SetModifyOtherKeys(ansicode.ModifyOtherKeys) {}

// ResetColor: palette overrides (OSC 4/104) are out of scope.
func (s *Screen) ResetColor(i int) {}

// ResetState implements RIS (ESC c): the full terminal reset.
func (s *Screen) ResetState() {
	s.grid = blankGrid(s.size)
	s.scrollback = nil
	s.scrollOffset = 0
	s.newOutputWhileSrlld = false
	s.cursor = vtmodel.CursorPos{}
	s.cursorVisible = true
	s.cursorStyle = vtmodel.CursorDefaultUserShape
	s.curAttr = vtmodel.BlankCell
	s.scrollTop = 0
	s.scrollBottom = s.size.Rows - 1
	s.autowrap = true
	s.applicationCursor = false
	s.bracketedPaste = false
	s.savedCursor = nil
	s.title = ""
	s.isAlternateScreen = false
	s.savedPrimaryGrid = nil
}

// RestoreCursorPosition implements the unified DECRC/RCP restore.
func (s *Screen) RestoreCursorPosition() {
	if s.savedCursor == nil {
		return
	}
	s.cursor = s.savedCursor.pos
	s.curAttr = s.savedCursor.attr
	s.clampCursor()
}

// ReverseIndex implements RI (ESC M): cursor up, scrolling the region
// down if already at its top.
func (s *Screen) ReverseIndex() { s.reverseLineFeed() }

// SaveCursorPosition implements the unified DECSC/SCP save.
func (s *Screen) SaveCursorPosition() {
	s.savedCursor = &savedCursorState{pos: s.cursor, attr: s.curAttr}
}

// ScrollDown shifts lines down within the scroll region (SD).
func (s *Screen) ScrollDown(n int) { s.scrollRegionDownN(n) }

// ScrollUp shifts lines up within the scroll region, pushing rows to
// scrollback (SU).
func (s *Screen) ScrollUp(n int) { s.scrollRegionUpN(n) }

// SetActiveCharset: alternate charsets are out of scope.
func (s *Screen) SetActiveCharset(n int) {}

// SetColor: custom palette entries (OSC 4) are out of scope; rendering
// only ever sees Indexed/RGB/Default per vtmodel.Color.
func (s *Screen) SetColor(index int, c color.Color) {}

// SetCursorStyle applies DECSCUSR. ansicode.CursorStyle is numbered
// identically to vtmodel.CursorStyle's DECSCUSR Ps 0-6 range in the
// reference handler (a direct int cast, no translation table), so the
// same direct conversion is used here, clamped defensively in case an
// out-of-range value reaches the callback.
func (s *Screen) SetCursorStyle(style ansicode.CursorStyle) {
	v := int(style)
	if v < int(vtmodel.CursorDefaultUserShape) || v > int(vtmodel.CursorSteadyBar) {
		s.cursorStyle = vtmodel.CursorDefaultUserShape
		return
	}
	s.cursorStyle = vtmodel.CursorStyle(v)
}

// SetDynamicColor (OSC 10/11/12 query) is out of scope: no response
// channel.
func (s *Screen) SetDynamicColor(prefix string, index int, terminator string) {}

// SetHyperlink (OSC 8): hyperlinks are not part of vtmodel.Cell.
func (s *Screen) SetHyperlink(hyperlink *ansicode.Hyperlink) {}

// SetKeypadApplicationMode / UnsetKeypadApplicationMode: the numeric
// keypad is not modeled (no distinct keypad key events in inputxlate).
func (s *Screen) SetKeypadApplicationMode()   {}
func (s *Screen) UnsetKeypadApplicationMode() {}

// SetMode / UnsetMode dispatch the subset of DEC private and ANSI
// modes this screen tracks; everything else is ignored, matching the
// old private-mode dispatcher's handled set (1, 7, 25, 2004, 47/1047/1049).
func (s *Screen) SetMode(mode ansicode.TerminalMode)   { s.setTerminalMode(mode, true) }
func (s *Screen) UnsetMode(mode ansicode.TerminalMode) { s.setTerminalMode(mode, false) }

func (s *Screen) setTerminalMode(mode ansicode.TerminalMode, set bool) {
	switch mode {
	case ansicode.TerminalModeCursorKeys:
		s.applicationCursor = set
	case ansicode.TerminalModeLineWrap:
		s.autowrap = set
	case ansicode.TerminalModeShowCursor:
		s.cursorVisible = set
	case ansicode.TerminalModeBracketedPaste:
		s.bracketedPaste = set
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		s.setAlternateScreen(set)
	}
}

// SetScrollingRegion implements DECSTBM (CSI r): top/bottom arrive
// 1-based: converted to climux's 0-based inclusive [scrollTop,
// scrollBottom] convention, matching the old setScrollRegion's
// boundary handling exactly.
func (s *Screen) SetScrollingRegion(top, bottom int) {
	top--
	bottom--
	rows := int(s.size.Rows)
	if top < 0 {
		top = 0
	}
	if bottom < 0 || bottom >= rows {
		bottom = rows - 1
	}
	if top >= bottom {
		return
	}
	s.scrollTop = uint16(top)
	s.scrollBottom = uint16(bottom)
	s.cursor = vtmodel.CursorPos{}
}

// SetTerminalCharAttribute applies one SGR sub-parameter to the
// current print template. Unlike the old applySGR, which consumed a
// whole CSI...m parameter list per call, go-ansicode calls this once
// per resolved attribute.
func (s *Screen) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		s.curAttr = vtmodel.BlankCell
	case ansicode.CharAttributeBold:
		s.curAttr.Bold = true
	case ansicode.CharAttributeDim:
		s.curAttr.Dim = true
	case ansicode.CharAttributeItalic:
		s.curAttr.Italic = true
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		// vtmodel.Cell tracks a single boolean underline; the distinct
		// SGR 4:2-4:5 underline shapes collapse onto it.
		s.curAttr.Underline = true
	case ansicode.CharAttributeBlinkSlow, ansicode.CharAttributeBlinkFast:
		// Blink is not part of vtmodel.Cell; rendering has no blink support.
	case ansicode.CharAttributeReverse:
		s.curAttr.Reverse = true
	case ansicode.CharAttributeHidden:
		s.curAttr.Hidden = true
	case ansicode.CharAttributeStrike:
		s.curAttr.Strikethrough = true
	case ansicode.CharAttributeCancelBold:
		s.curAttr.Bold = false
	case ansicode.CharAttributeCancelBoldDim:
		s.curAttr.Bold = false
		s.curAttr.Dim = false
	case ansicode.CharAttributeCancelItalic:
		s.curAttr.Italic = false
	case ansicode.CharAttributeCancelUnderline:
		s.curAttr.Underline = false
	case ansicode.CharAttributeCancelBlink:
		// no blink state to clear
	case ansicode.CharAttributeCancelReverse:
		s.curAttr.Reverse = false
	case ansicode.CharAttributeCancelHidden:
		s.curAttr.Hidden = false
	case ansicode.CharAttributeCancelStrike:
		s.curAttr.Strikethrough = false
	case ansicode.CharAttributeForeground:
		s.curAttr.Fg = resolveColor(attr)
	case ansicode.CharAttributeBackground:
		s.curAttr.Bg = resolveColor(attr)
	case ansicode.CharAttributeUnderlineColor:
		// no separate underline color field on vtmodel.Cell
	}
}

// resolveColor maps a resolved SGR color attribute onto vtmodel.Color.
// NamedColor (the library's semantic foreground/background/cursor
// sentinels) has no equivalent in vtmodel.Color and falls back to the
// terminal default, same as the zero-value/unset case.
func resolveColor(attr ansicode.TerminalCharAttribute) vtmodel.Color {
	switch {
	case attr.RGBColor != nil:
		return vtmodel.RGB(attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B)
	case attr.IndexedColor != nil:
		return vtmodel.Indexed(attr.IndexedColor.Index)
	default:
		return vtmodel.DefaultColor
	}
}

// SetTitle implements OSC 0/2.
func (s *Screen) SetTitle(title string) { s.title = title }

// SetWorkingDirectory implements OSC 7; the raw URI is parsed with the
// same climux/internal/osc7 helper the old OSC dispatcher used.
func (s *Screen) SetWorkingDirectory(uri string) {
	if path, ok := osc7.ParseURI(uri); ok {
		s.cwd = path
	}
}

// Substitute (SUB, 0x1A) is out of scope.
func (s *Screen) Substitute() {}

// Tab implements HT (0x09), advancing to the next n 8-column stops.
func (s *Screen) Tab(n int) { s.tabForward(n) }

func (s *Screen) tabForward(n int) {
	for i := 0; i < n; i++ {
		next := (s.cursor.Col/8 + 1) * 8
		if next >= s.size.Cols {
			next = s.size.Cols - 1
		}
		s.cursor.Col = next
	}
}

func (s *Screen) tabBackward(n int) {
	for i := 0; i < n; i++ {
		if s.cursor.Col == 0 {
			break
		}
		prev := ((s.cursor.Col - 1) / 8) * 8
		s.cursor.Col = prev
	}
}

// TextAreaSizeChars / TextAreaSizePixels / CellSizePixels (DSR size
// queries) are out of scope: no response channel.
func (s *Screen) TextAreaSizeChars()  {}
func (s *Screen) TextAreaSizePixels() {}
func (s *Screen) CellSizePixels()     {}

// SixelReceived (sixel graphics) is out of scope.
func (s *Screen) SixelReceived(params [][]uint16, data []byte) {}

// ShellIntegrationMark (OSC 133) is out of scope.
func (s *Screen) ShellIntegrationMark(mark ansicode.ShellIntegrationMark, exitCode int) {}

func clampU16(v int, lo, hi uint16) uint16 {
	if v < int(lo) {
		return lo
	}
	if v > int(hi) {
		return hi
	}
	return uint16(v)
}

// setAlternateScreen enters or leaves the alternate screen buffer,
// saving/restoring the primary grid, cursor, and scroll region. A
// redundant entry while already on the alternate screen is a no-op
// (it must not overwrite the saved primary).
func (s *Screen) setAlternateScreen(enter bool) {
	if enter {
		if s.isAlternateScreen {
			return
		}
		s.savedPrimaryGrid = s.grid
		s.savedPrimaryCursor = s.cursor
		s.savedPrimaryScrollTop = s.scrollTop
		s.savedPrimaryScrollBottom = s.scrollBottom
		s.grid = blankGrid(s.size)
		s.cursor = vtmodel.CursorPos{}
		s.scrollTop = 0
		s.scrollBottom = s.size.Rows - 1
		s.isAlternateScreen = true
		return
	}
	if !s.isAlternateScreen {
		return
	}
	s.grid = s.savedPrimaryGrid
	s.cursor = s.savedPrimaryCursor
	s.scrollTop = s.savedPrimaryScrollTop
	s.scrollBottom = s.savedPrimaryScrollBottom
	s.savedPrimaryGrid = nil
	s.isAlternateScreen = false
}
