package dispatch

import (
	"errors"
	"testing"

	"climux/internal/inputxlate"
	"climux/internal/sessionmgr"
	"climux/internal/vtmodel"
)

type fakeSession struct {
	created     string
	closed      bool
	selectedIdx int
	nexted      bool
	preved      bool
	written     []byte
	resized     vtmodel.TerminalSize
	polled      bool
	renamed     string
	memo        string
	closeErr    error
	writeErr    error
}

func (f *fakeSession) CreateTerminal(name, shellCommand string, size vtmodel.TerminalSize) (vtmodel.TerminalId, error) {
	f.created = name
	return 1, nil
}
func (f *fakeSession) CloseActiveTerminal() error {
	f.closed = true
	return f.closeErr
}
func (f *fakeSession) SelectNext()              { f.nexted = true }
func (f *fakeSession) SelectPrev()               { f.preved = true }
func (f *fakeSession) SelectByIndex(i int)      { f.selectedIdx = i }
func (f *fakeSession) WriteToActive(p []byte) error {
	f.written = p
	return f.writeErr
}
func (f *fakeSession) ResizeAll(size vtmodel.TerminalSize) { f.resized = size }
func (f *fakeSession) PollAll()                            { f.polled = true }
func (f *fakeSession) RenameActiveTerminal(name string)    { f.renamed = name }
func (f *fakeSession) SetActiveMemo(text string)           { f.memo = text }

func TestDispatchRoutesSessionActions(t *testing.T) {
	f := &fakeSession{}
	d := New(f, "/bin/sh")

	d.Dispatch(inputxlate.Action{Kind: inputxlate.ActionCreateTerminal, Name: "x"})
	if f.created != "x" {
		t.Fatalf("CreateTerminal not routed")
	}
	d.Dispatch(inputxlate.Action{Kind: inputxlate.ActionSelectByIndex, Index: 3})
	if f.selectedIdx != 3 {
		t.Fatalf("SelectByIndex not routed")
	}
	d.Dispatch(inputxlate.Action{Kind: inputxlate.ActionWriteToActive, Bytes: []byte("hi")})
	if string(f.written) != "hi" {
		t.Fatalf("WriteToActive not routed")
	}
}

func TestDispatchIsNoopForOuterLoopActions(t *testing.T) {
	f := &fakeSession{}
	d := New(f, "/bin/sh")
	if err := d.Dispatch(inputxlate.Action{Kind: inputxlate.ActionQuit}); err != nil {
		t.Fatalf("Quit dispatch returned error: %v", err)
	}
	if f.nexted || f.preved || f.polled || f.closed {
		t.Fatalf("outer-loop action leaked into a session effect: %+v", f)
	}
}

func TestDispatchPropagatesNoActiveTerminal(t *testing.T) {
	f := &fakeSession{closeErr: sessionmgr.ErrNoActiveTerminal}
	d := New(f, "/bin/sh")
	err := d.Dispatch(inputxlate.Action{Kind: inputxlate.ActionCloseTerminal})
	if !errors.Is(err, sessionmgr.ErrNoActiveTerminal) {
		t.Fatalf("expected ErrNoActiveTerminal to propagate, got %v", err)
	}
}
