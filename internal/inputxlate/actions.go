package inputxlate

import "climux/internal/vtmodel"

// ActionKind tags an Action. The set is closed and matches spec.md
// §4.G; the dispatcher routes each kind to either the session manager
// or the outer loop.
type ActionKind int

const (
	ActionCreateTerminal ActionKind = iota
	ActionCloseTerminal
	ActionSelectNext
	ActionSelectPrev
	ActionSelectByIndex
	ActionWriteToActive
	ActionResizeAll
	ActionPollAll
	ActionQuit
	ActionToggleFocus
	ActionEnterScrollback
	ActionExitScrollback
	ActionScrollbackUp
	ActionScrollbackDown
	ActionScrollbackPageUp
	ActionScrollbackPageDown
	ActionScrollbackTop
	ActionScrollbackBottom
	ActionRenameTerminal
	ActionOpenMemo
	ActionSaveMemo
	ActionShowHelp
	ActionToggleMiniTerminal
	ActionOpenQuickSwitcher
	ActionEnterScrollbackSearch
	ActionExitScrollbackSearch
	ActionConfirmScrollbackSearch
	ActionScrollbackSearchNext
	ActionScrollbackSearchPrev
	ActionYankLine
	ActionYankAllVisible
	ActionPasteYankBuffer
	ActionEnterVisualChar
	ActionEnterVisualLine
)

// Action is the tagged union the translator and dispatcher pass
// around. Only the fields relevant to Kind are populated.
type Action struct {
	Kind ActionKind

	Name  string // CreateTerminal, RenameTerminal
	Index int    // SelectByIndex
	Bytes []byte // WriteToActive
	Size  vtmodel.TerminalSize
	N     int    // ScrollbackUp/Down
	Text  string // SaveMemo
}
