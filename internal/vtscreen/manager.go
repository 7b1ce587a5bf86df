package vtscreen

import "climux/internal/vtmodel"

// Manager owns one Screen per TerminalId. It is not safe for
// concurrent use: the spec's single-threaded cooperative model means
// every call originates from the same goroutine.
type Manager struct {
	screens map[vtmodel.TerminalId]*Screen
}

// NewManager returns an empty screen manager.
func NewManager() *Manager {
	return &Manager{screens: make(map[vtmodel.TerminalId]*Screen)}
}

// Create allocates a blank screen buffer for id, capped at
// maxScrollback stored scrollback rows.
func (m *Manager) Create(id vtmodel.TerminalId, size vtmodel.TerminalSize, maxScrollback int) {
	m.screens[id] = NewScreen(size, maxScrollback)
}

// Remove discards id's screen buffer.
func (m *Manager) Remove(id vtmodel.TerminalId) {
	delete(m.screens, id)
}

func (m *Manager) get(id vtmodel.TerminalId) (*Screen, error) {
	s, ok := m.screens[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return s, nil
}

// Process parses a chunk of child output for id.
func (m *Manager) Process(id vtmodel.TerminalId, data []byte) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.Process(data)
	return nil
}

// Resize resizes id's screen buffer.
func (m *Manager) Resize(id vtmodel.TerminalId, size vtmodel.TerminalSize) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.Resize(size)
	return nil
}

// GetCells returns the live-or-history cell view for id.
func (m *Manager) GetCells(id vtmodel.TerminalId) ([][]vtmodel.Cell, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.GetCells(), nil
}

// GetCursor returns id's cursor position.
func (m *Manager) GetCursor(id vtmodel.TerminalId) (vtmodel.CursorPos, error) {
	s, err := m.get(id)
	if err != nil {
		return vtmodel.CursorPos{}, err
	}
	return s.Cursor(), nil
}

// GetCursorVisible reports id's DECTCEM state.
func (m *Manager) GetCursorVisible(id vtmodel.TerminalId) (bool, error) {
	s, err := m.get(id)
	if err != nil {
		return false, err
	}
	return s.CursorVisible(), nil
}

// GetApplicationCursorKeys reports id's DECCKM state.
func (m *Manager) GetApplicationCursorKeys(id vtmodel.TerminalId) (bool, error) {
	s, err := m.get(id)
	if err != nil {
		return false, err
	}
	return s.ApplicationCursorKeys(), nil
}

// GetBracketedPaste reports id's bracketed-paste mode.
func (m *Manager) GetBracketedPaste(id vtmodel.TerminalId) (bool, error) {
	s, err := m.get(id)
	if err != nil {
		return false, err
	}
	return s.BracketedPaste(), nil
}

// GetCwd returns id's OSC-7-reported cwd, if any.
func (m *Manager) GetCwd(id vtmodel.TerminalId) (string, bool, error) {
	s, err := m.get(id)
	if err != nil {
		return "", false, err
	}
	cwd, ok := s.Cwd()
	return cwd, ok, nil
}

// GetTitle returns id's window title, if any.
func (m *Manager) GetTitle(id vtmodel.TerminalId) (string, bool, error) {
	s, err := m.get(id)
	if err != nil {
		return "", false, err
	}
	title, ok := s.Title()
	return title, ok, nil
}

// IsAlternateScreen reports whether id is on its alternate grid.
func (m *Manager) IsAlternateScreen(id vtmodel.TerminalId) (bool, error) {
	s, err := m.get(id)
	if err != nil {
		return false, err
	}
	return s.IsAlternateScreen(), nil
}

// DrainNotifications drains and returns id's pending notification FIFO.
func (m *Manager) DrainNotifications(id vtmodel.TerminalId) ([]vtmodel.NotificationEvent, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.DrainNotifications(), nil
}

// SetScrollbackOffset sets id's scrollback offset, clamped to [0,max].
func (m *Manager) SetScrollbackOffset(id vtmodel.TerminalId, offset int) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.SetScrollbackOffset(offset)
	return nil
}

// GetScrollbackOffset returns id's current scrollback offset.
func (m *Manager) GetScrollbackOffset(id vtmodel.TerminalId) (int, error) {
	s, err := m.get(id)
	if err != nil {
		return 0, err
	}
	return s.ScrollbackOffset(), nil
}

// GetMaxScrollback returns id's total stored scrollback line count.
func (m *Manager) GetMaxScrollback(id vtmodel.TerminalId) (int, error) {
	s, err := m.get(id)
	if err != nil {
		return 0, err
	}
	return s.MaxScrollback(), nil
}

// SearchScrollback searches id's history and live grid for query.
func (m *Manager) SearchScrollback(id vtmodel.TerminalId, query string) ([]SearchMatch, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.SearchScrollback(query), nil
}

// GetRowCells returns a single absolute row for id.
func (m *Manager) GetRowCells(id vtmodel.TerminalId, absolute int) ([]vtmodel.Cell, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return s.GetRowCells(absolute), nil
}
