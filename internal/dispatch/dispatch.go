// Package dispatch routes translator Actions to the session manager.
// It is a thin controller: actions belonging to the outer loop
// (Quit, focus toggle, scrollback UI state, overlays) are recognized
// but produce no session-manager effect.
package dispatch

import (
	"climux/internal/inputxlate"
	"climux/internal/sessionmgr"
	"climux/internal/vtmodel"
)

// SessionOps is the subset of *sessionmgr.Manager the dispatcher
// drives. Declared as an interface so tests can substitute a double.
type SessionOps interface {
	CreateTerminal(name, shellCommand string, size vtmodel.TerminalSize) (vtmodel.TerminalId, error)
	CloseActiveTerminal() error
	SelectNext()
	SelectPrev()
	SelectByIndex(i int)
	WriteToActive(p []byte) error
	ResizeAll(size vtmodel.TerminalSize)
	PollAll()
	RenameActiveTerminal(name string)
	SetActiveMemo(text string)
}

// Dispatcher routes Actions to a SessionOps. DefaultShellCommand is
// the command used for CreateTerminal actions; their size is the
// action's own Size field, which the outer loop fills in with the
// current layout before dispatching.
type Dispatcher struct {
	Session             SessionOps
	DefaultShellCommand string
}

// New constructs a Dispatcher over session, using shellCommand as the
// command passed to every CreateTerminal call.
func New(session SessionOps, shellCommand string) *Dispatcher {
	return &Dispatcher{Session: session, DefaultShellCommand: shellCommand}
}

// outerLoopActions are recognized but produce no session effect; the
// caller (outer loop) is expected to have already handled them before
// or instead of calling Dispatch.
var outerLoopActions = map[inputxlate.ActionKind]bool{
	inputxlate.ActionQuit:                       true,
	inputxlate.ActionToggleFocus:                true,
	inputxlate.ActionEnterScrollback:             true,
	inputxlate.ActionExitScrollback:              true,
	inputxlate.ActionScrollbackUp:                true,
	inputxlate.ActionScrollbackDown:              true,
	inputxlate.ActionScrollbackPageUp:            true,
	inputxlate.ActionScrollbackPageDown:          true,
	inputxlate.ActionScrollbackTop:               true,
	inputxlate.ActionScrollbackBottom:            true,
	inputxlate.ActionOpenMemo:                    true,
	inputxlate.ActionShowHelp:                    true,
	inputxlate.ActionToggleMiniTerminal:          true,
	inputxlate.ActionOpenQuickSwitcher:           true,
	inputxlate.ActionEnterScrollbackSearch:       true,
	inputxlate.ActionExitScrollbackSearch:        true,
	inputxlate.ActionConfirmScrollbackSearch:     true,
	inputxlate.ActionScrollbackSearchNext:        true,
	inputxlate.ActionScrollbackSearchPrev:        true,
	inputxlate.ActionYankLine:                    true,
	inputxlate.ActionYankAllVisible:              true,
	inputxlate.ActionPasteYankBuffer:             true,
	inputxlate.ActionEnterVisualChar:             true,
	inputxlate.ActionEnterVisualLine:             true,
}

// Dispatch performs the session-level effect of a, if any. It never
// swallows sessionmgr.ErrNoActiveTerminal; the caller decides whether
// to demote that error (routine for key-forwarding/polling paths,
// surfaced for explicit user commands per spec.md §7).
func (d *Dispatcher) Dispatch(a inputxlate.Action) error {
	if outerLoopActions[a.Kind] {
		return nil
	}
	switch a.Kind {
	case inputxlate.ActionCreateTerminal:
		_, err := d.Session.CreateTerminal(a.Name, d.DefaultShellCommand, a.Size)
		return err
	case inputxlate.ActionCloseTerminal:
		return d.Session.CloseActiveTerminal()
	case inputxlate.ActionSelectNext:
		d.Session.SelectNext()
		return nil
	case inputxlate.ActionSelectPrev:
		d.Session.SelectPrev()
		return nil
	case inputxlate.ActionSelectByIndex:
		d.Session.SelectByIndex(a.Index)
		return nil
	case inputxlate.ActionWriteToActive:
		return d.Session.WriteToActive(a.Bytes)
	case inputxlate.ActionResizeAll:
		d.Session.ResizeAll(a.Size)
		return nil
	case inputxlate.ActionPollAll:
		d.Session.PollAll()
		return nil
	case inputxlate.ActionRenameTerminal:
		d.Session.RenameActiveTerminal(a.Name)
		return nil
	case inputxlate.ActionSaveMemo:
		d.Session.SetActiveMemo(a.Text)
		return nil
	default:
		return nil
	}
}
