package sessionmgr

import (
	"errors"
	"testing"

	"climux/internal/vtmodel"
	"climux/internal/vtscreen"
)

// fakePty is an in-memory ptyio.Port double for exercising the
// session manager without a real child process.
type fakePty struct {
	spawnErr  error
	reads     map[vtmodel.TerminalId][]byte
	readErr   map[vtmodel.TerminalId]error
	exited    map[vtmodel.TerminalId]int32
	writes    map[vtmodel.TerminalId][]byte
	killed    map[vtmodel.TerminalId]bool
}

func newFakePty() *fakePty {
	return &fakePty{
		reads:   make(map[vtmodel.TerminalId][]byte),
		readErr: make(map[vtmodel.TerminalId]error),
		exited:  make(map[vtmodel.TerminalId]int32),
		writes:  make(map[vtmodel.TerminalId][]byte),
		killed:  make(map[vtmodel.TerminalId]bool),
	}
}

func (f *fakePty) Spawn(id vtmodel.TerminalId, cmd, cwd string, size vtmodel.TerminalSize) error {
	return f.spawnErr
}
func (f *fakePty) Read(id vtmodel.TerminalId) ([]byte, error) {
	if err, ok := f.readErr[id]; ok {
		return nil, err
	}
	data := f.reads[id]
	f.reads[id] = nil
	return data, nil
}
func (f *fakePty) Write(id vtmodel.TerminalId, p []byte) error {
	f.writes[id] = append(f.writes[id], p...)
	return nil
}
func (f *fakePty) Resize(id vtmodel.TerminalId, size vtmodel.TerminalSize) error { return nil }
func (f *fakePty) TryWait(id vtmodel.TerminalId) (int32, bool) {
	code, ok := f.exited[id]
	return code, ok
}
func (f *fakePty) Kill(id vtmodel.TerminalId) error {
	f.killed[id] = true
	return nil
}

func newTestManager(t *testing.T) (*Manager, *fakePty) {
	t.Helper()
	pty := newFakePty()
	screens := vtscreen.NewManager()
	mgr := NewManager(pty, screens, "/tmp", 10000)
	return mgr, pty
}

func TestCreateCloseLifecycle(t *testing.T) {
	mgr, _ := newTestManager(t)
	id, err := mgr.CreateTerminal("", "/bin/sh", vtmodel.TerminalSize{Cols: 80, Rows: 24})
	if err != nil {
		t.Fatalf("CreateTerminal: %v", err)
	}
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}
	if mgr.ActiveTerminal().Name != "term-1" {
		t.Fatalf("default name = %q, want term-1", mgr.ActiveTerminal().Name)
	}
	if err := mgr.CloseActiveTerminal(); err != nil {
		t.Fatalf("CloseActiveTerminal: %v", err)
	}
	if mgr.ActiveIndex() != -1 {
		t.Fatalf("activeIndex after closing only terminal = %d, want -1", mgr.ActiveIndex())
	}
	if err := mgr.CloseActiveTerminal(); !errors.Is(err, ErrNoActiveTerminal) {
		t.Fatalf("CloseActiveTerminal on empty list = %v, want ErrNoActiveTerminal", err)
	}
}

func TestSelectWrapAround(t *testing.T) {
	mgr, _ := newTestManager(t)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}
	mgr.CreateTerminal("", "/bin/sh", size)
	mgr.CreateTerminal("", "/bin/sh", size)
	mgr.CreateTerminal("", "/bin/sh", size)

	if mgr.ActiveIndex() != 2 {
		t.Fatalf("active index after 3 creates = %d, want 2", mgr.ActiveIndex())
	}
	mgr.SelectNext()
	if mgr.ActiveIndex() != 0 {
		t.Fatalf("SelectNext should wrap to 0, got %d", mgr.ActiveIndex())
	}
	mgr.SelectPrev()
	if mgr.ActiveIndex() != 2 {
		t.Fatalf("SelectPrev should wrap to 2, got %d", mgr.ActiveIndex())
	}
}

// S5: prefix + digit selection lands on SelectByIndex.
func TestSelectByIndexClearsUnread(t *testing.T) {
	mgr, _ := newTestManager(t)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}
	mgr.CreateTerminal("", "/bin/sh", size)
	mgr.CreateTerminal("", "/bin/sh", size)
	mgr.CreateTerminal("", "/bin/sh", size)

	mgr.terminals[1].HasUnreadNotification = true
	mgr.SelectByIndex(1)
	if mgr.ActiveIndex() != 1 {
		t.Fatalf("active index = %d, want 1", mgr.ActiveIndex())
	}
	if mgr.terminals[1].HasUnreadNotification {
		t.Fatalf("selecting a terminal should clear its unread flag")
	}
}

// Invariant 1: has_unread_notification => last_notification.is_some().
func TestUnreadImpliesLastNotification(t *testing.T) {
	mgr, pty := newTestManager(t)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}
	mgr.CreateTerminal("", "/bin/sh", size) // index 0, active
	mgr.CreateTerminal("", "/bin/sh", size) // index 1, active

	// Make terminal 0 (now inactive) bell.
	pty.reads[vtmodel.TerminalId(1)] = []byte("\x07")
	mgr.PollAll()

	t0 := mgr.terminals[0]
	if t0.HasUnreadNotification && t0.LastNotification == nil {
		t.Fatalf("invariant violated: unread flag set without last_notification")
	}
	if !t0.HasUnreadNotification {
		t.Fatalf("expected inactive terminal 0 to have unread notification after bell")
	}

	pending := mgr.TakePendingNotifications()
	if len(pending) != 1 || pending[0].Source != t0.Name {
		t.Fatalf("pending notifications = %+v, want one entry for %s", pending, t0.Name)
	}
}

// Invariant 5: once Exited, status is idempotent across poll cycles.
func TestExitedStatusIsIdempotent(t *testing.T) {
	mgr, pty := newTestManager(t)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}
	mgr.CreateTerminal("", "/bin/sh", size)

	pty.readErr[vtmodel.TerminalId(1)] = errors.New("boom")
	mgr.PollAll()
	if !mgr.terminals[0].Status.Exited || mgr.terminals[0].Status.ExitCode != -1 {
		t.Fatalf("status after read error = %+v, want Exited(-1)", mgr.terminals[0].Status)
	}

	// A later poll must not change the exit code even if TryWait would
	// now report something else.
	pty.exited[vtmodel.TerminalId(1)] = 7
	mgr.PollAll()
	if mgr.terminals[0].Status.ExitCode != -1 {
		t.Fatalf("exit code changed on a later poll: %+v", mgr.terminals[0].Status)
	}
}

func TestCloseActiveSkipsKillWhenExited(t *testing.T) {
	mgr, pty := newTestManager(t)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}
	mgr.CreateTerminal("", "/bin/sh", size)
	mgr.terminals[0].Status = vtmodel.Exited(0)

	if err := mgr.CloseActiveTerminal(); err != nil {
		t.Fatalf("CloseActiveTerminal: %v", err)
	}
	if pty.killed[vtmodel.TerminalId(1)] {
		t.Fatalf("closing an already-exited terminal should not call Kill")
	}
}
