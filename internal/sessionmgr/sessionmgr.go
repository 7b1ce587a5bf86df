// Package sessionmgr owns the terminal list, active-terminal
// selection, and the poll loop that pumps child output into the
// screen engine and fans out notifications.
package sessionmgr

import (
	"errors"
	"fmt"

	"climux/internal/ptyio"
	"climux/internal/vtmodel"
	"climux/internal/vtscreen"
)

// ErrNoActiveTerminal is returned by operations that require an
// active terminal when the list is empty.
var ErrNoActiveTerminal = errors.New("sessionmgr: no active terminal")

// ManagedTerminal is one entry in the session manager's terminal list.
type ManagedTerminal struct {
	ID                    vtmodel.TerminalId
	Name                  string
	Cwd                   string
	Status                vtmodel.TerminalStatus
	LastNotification      *vtmodel.NotificationEvent
	HasUnreadNotification bool
	Memo                  string
}

// DisplayName renders "id: name", the sidebar label.
func (m *ManagedTerminal) DisplayName() string {
	return fmt.Sprintf("%s: %s", m.ID, m.Name)
}

func (m *ManagedTerminal) setNotification(ev vtmodel.NotificationEvent) {
	e := ev
	m.LastNotification = &e
	m.HasUnreadNotification = true
}

// clearNotification resets only the unread flag; last_notification is
// explicitly preserved so the sidebar can still show "what happened".
func (m *ManagedTerminal) clearNotification() {
	m.HasUnreadNotification = false
}

// PendingNotification is a (source name, event) pair queued for
// desktop delivery.
type PendingNotification struct {
	Source string
	Event  vtmodel.NotificationEvent
}

// Manager owns the pty backend, screen engine, terminal list, and
// active selection. Every method assumes single-threaded cooperative
// calling, matching the spec's concurrency model.
type Manager struct {
	pty    ptyio.Port
	screen *vtscreen.Manager

	terminals     []*ManagedTerminal
	activeIndex   int // -1 means none
	nextID        vtmodel.TerminalId
	launchCwd     string
	maxScrollback int

	pending []PendingNotification
}

// NewManager constructs an empty session manager. nextID starts at 1.
// maxScrollback is the per-terminal scrollback row cap passed through
// to every screen buffer this manager creates.
func NewManager(pty ptyio.Port, screen *vtscreen.Manager, launchCwd string, maxScrollback int) *Manager {
	return &Manager{
		pty:           pty,
		screen:        screen,
		activeIndex:   -1,
		nextID:        1,
		launchCwd:     launchCwd,
		maxScrollback: maxScrollback,
	}
}

// Terminals returns the ordered terminal list (read-only view).
func (m *Manager) Terminals() []*ManagedTerminal { return m.terminals }

// ActiveIndex returns the active terminal's index, or -1 if none.
func (m *Manager) ActiveIndex() int { return m.activeIndex }

// ActiveTerminal returns the active terminal, or nil if none.
func (m *Manager) ActiveTerminal() *ManagedTerminal {
	if m.activeIndex < 0 {
		return nil
	}
	return m.terminals[m.activeIndex]
}

// CreateTerminal spawns a new child and screen buffer, appends a
// ManagedTerminal, and makes it active. If name is empty, the default
// "term-<id>" is used. The shell command and cwd are the caller's
// (outer loop's) responsibility to resolve from SHELL / launchCwd.
func (m *Manager) CreateTerminal(name, shellCommand string, size vtmodel.TerminalSize) (vtmodel.TerminalId, error) {
	id := m.nextID
	if err := m.pty.Spawn(id, shellCommand, m.launchCwd, size); err != nil {
		return 0, err
	}
	m.screen.Create(id, size, m.maxScrollback)
	m.nextID++

	if name == "" {
		name = fmt.Sprintf("term-%s", id)
	}
	t := &ManagedTerminal{
		ID:     id,
		Name:   name,
		Cwd:    m.launchCwd,
		Status: vtmodel.Running(),
	}
	m.terminals = append(m.terminals, t)
	m.activeIndex = len(m.terminals) - 1
	return id, nil
}

// CloseActiveTerminal kills (if running) and removes the active
// terminal. An already-Exited terminal skips the kill step.
func (m *Manager) CloseActiveTerminal() error {
	if m.activeIndex < 0 {
		return ErrNoActiveTerminal
	}
	t := m.terminals[m.activeIndex]
	if !t.Status.Exited {
		m.pty.Kill(t.ID)
	}
	m.screen.Remove(t.ID)
	m.terminals = append(m.terminals[:m.activeIndex], m.terminals[m.activeIndex+1:]...)

	if len(m.terminals) == 0 {
		m.activeIndex = -1
		return nil
	}
	if m.activeIndex > len(m.terminals)-1 {
		m.activeIndex = len(m.terminals) - 1
	}
	return nil
}

// SelectNext moves the active index forward with wrap-around; no-op
// if the list is empty. Clears the new active terminal's unread flag.
func (m *Manager) SelectNext() {
	if len(m.terminals) == 0 {
		return
	}
	m.activeIndex = (m.activeIndex + 1) % len(m.terminals)
	m.terminals[m.activeIndex].clearNotification()
}

// SelectPrev moves the active index backward with wrap-around; no-op
// if the list is empty.
func (m *Manager) SelectPrev() {
	if len(m.terminals) == 0 {
		return
	}
	m.activeIndex = (m.activeIndex - 1 + len(m.terminals)) % len(m.terminals)
	m.terminals[m.activeIndex].clearNotification()
}

// SelectByIndex sets the active terminal to i if in range; otherwise
// a no-op.
func (m *Manager) SelectByIndex(i int) {
	if i < 0 || i >= len(m.terminals) {
		return
	}
	m.activeIndex = i
	m.terminals[i].clearNotification()
}

// RenameActiveTerminal sets the active terminal's display name, if any.
func (m *Manager) RenameActiveTerminal(name string) {
	if t := m.ActiveTerminal(); t != nil {
		t.Name = name
	}
}

// GetActiveMemo returns the active terminal's memo text.
func (m *Manager) GetActiveMemo() (string, bool) {
	t := m.ActiveTerminal()
	if t == nil {
		return "", false
	}
	return t.Memo, true
}

// SetActiveMemo sets the active terminal's memo text.
func (m *Manager) SetActiveMemo(text string) {
	if t := m.ActiveTerminal(); t != nil {
		t.Memo = text
	}
}

// WriteToActive forwards bytes to the active child.
func (m *Manager) WriteToActive(p []byte) error {
	t := m.ActiveTerminal()
	if t == nil {
		return ErrNoActiveTerminal
	}
	return m.pty.Write(t.ID, p)
}

// Shutdown kills and reaps every child, removes every screen buffer,
// and empties the terminal list. Intended for the outer loop's exit
// path; individual kill failures are ignored since the process is
// tearing down regardless.
func (m *Manager) Shutdown() {
	for _, t := range m.terminals {
		if !t.Status.Exited {
			m.pty.Kill(t.ID)
		}
		m.screen.Remove(t.ID)
	}
	m.terminals = nil
	m.activeIndex = -1
}

// ResizeAll resizes every pty and every screen, ignoring individual
// failures (a dead child's resize error is not fatal to the others).
func (m *Manager) ResizeAll(size vtmodel.TerminalSize) {
	for _, t := range m.terminals {
		m.pty.Resize(t.ID, size)
		m.screen.Resize(t.ID, size)
	}
}

// PollAll reads each running terminal's pty output in index order,
// feeds it to the screen engine, then checks for exit. A read error
// transitions the terminal to Exited(-1) immediately, without calling
// TryWait, and an already-Exited terminal is never re-polled. After
// processing output, the screen's notification FIFO is drained; only
// the last queued event is kept. If the terminal is not active, its
// unread flag is set; the (name, event) pair is queued for desktop
// delivery regardless of active state.
func (m *Manager) PollAll() {
	for i, t := range m.terminals {
		if t.Status.Exited {
			continue
		}
		data, err := m.pty.Read(t.ID)
		if err != nil {
			t.Status = vtmodel.Exited(-1)
			continue
		}
		if len(data) > 0 {
			m.screen.Process(t.ID, data)
		}
		if code, exited := m.pty.TryWait(t.ID); exited {
			t.Status = vtmodel.Exited(code)
		}

		events, _ := m.screen.DrainNotifications(t.ID)
		if len(events) == 0 {
			continue
		}
		last := events[len(events)-1]
		if i != m.activeIndex {
			t.setNotification(last)
		}
		m.pending = append(m.pending, PendingNotification{Source: t.Name, Event: last})
	}
}

// TakePendingNotifications drains and returns the queue built up by
// PollAll.
func (m *Manager) TakePendingNotifications() []PendingNotification {
	out := m.pending
	m.pending = nil
	return out
}
