package inputxlate

import (
	"strings"
	"time"
)

// Mode is the input translator's current state.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrefixWait
	ModeDialogInput
	ModeScrollback
)

const prefixTimeout = time.Second

// DefaultPrefixKey is Ctrl+t, used when config.PrefixKey is empty or
// fails to parse.
var DefaultPrefixKey = Key{Kind: KeyRune, Rune: 't', Control: true}

// ParsePrefixKey parses a config.PrefixKey spec such as "ctrl+t" into
// a Key. Only a single "ctrl+<rune>" or bare "<rune>" form is
// recognized; anything else falls back to DefaultPrefixKey.
func ParsePrefixKey(spec string) Key {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	switch len(parts) {
	case 1:
		if r := []rune(parts[0]); len(r) == 1 {
			return Key{Kind: KeyRune, Rune: r[0]}
		}
	case 2:
		if parts[0] == "ctrl" {
			if r := []rune(parts[1]); len(r) == 1 {
				return Key{Kind: KeyRune, Rune: r[0], Control: true}
			}
		}
	}
	return DefaultPrefixKey
}

// Translator is the prefix-key state machine described in spec.md
// §4.F: Normal forwards keys to the child; PrefixWait interprets the
// next key as a command; DialogInput and ScrollbackMode are consumed
// by the outer layer.
type Translator struct {
	mode                  Mode
	prefixKey             Key
	prefixHeldSince       time.Time
	applicationCursorKeys bool
	now                   func() time.Time
}

// New constructs a translator in Normal mode, using prefix as its
// prefix key (config.PrefixKey, parsed by ParsePrefixKey).
func New(prefix Key) *Translator {
	return &Translator{now: time.Now, prefixKey: prefix}
}

// Mode returns the current state.
func (t *Translator) Mode() Mode { return t.mode }

// SetApplicationCursorKeys mirrors the active screen's DECCKM state so
// arrow/Home/End keys translate correctly.
func (t *Translator) SetApplicationCursorKeys(v bool) { t.applicationCursorKeys = v }

// EnterDialogInput / EnterScrollbackMode / ReturnToNormal let the
// outer loop drive mode transitions triggered by actions it consumes
// directly (ShowHelp, OpenMemo, EnterScrollback, ...).
func (t *Translator) EnterDialogInput()    { t.mode = ModeDialogInput }
func (t *Translator) EnterScrollbackMode() { t.mode = ModeScrollback }
func (t *Translator) ReturnToNormal()      { t.mode = ModeNormal }

// CheckTimeout returns (WriteToActive{0x14}, true) if PrefixWait has
// been held for at least 1 second, resetting to Normal. Otherwise
// (zero Action, false).
func (t *Translator) CheckTimeout() (Action, bool) {
	if t.mode != ModePrefixWait {
		return Action{}, false
	}
	if t.now().Sub(t.prefixHeldSince) < prefixTimeout {
		return Action{}, false
	}
	t.mode = ModeNormal
	return Action{Kind: ActionWriteToActive, Bytes: []byte{0x14}}, true
}

// HandleKey advances the state machine for one key and returns the
// resulting Action, if any.
func (t *Translator) HandleKey(k Key) (Action, bool) {
	switch t.mode {
	case ModeNormal:
		return t.handleNormal(k)
	case ModePrefixWait:
		return t.handlePrefix(k)
	case ModeDialogInput, ModeScrollback:
		return t.handleModal(k)
	default:
		return Action{}, false
	}
}

func (t *Translator) handleNormal(k Key) (Action, bool) {
	if k == t.prefixKey {
		t.mode = ModePrefixWait
		t.prefixHeldSince = t.now()
		return Action{}, false
	}
	b := bytesForKey(k, t.applicationCursorKeys)
	if b == nil {
		return Action{}, false
	}
	return Action{Kind: ActionWriteToActive, Bytes: b}, true
}

// handlePrefix always resets to Normal first: command keys are single
// keystrokes, never chords.
func (t *Translator) handlePrefix(k Key) (Action, bool) {
	t.mode = ModeNormal
	if k == t.prefixKey {
		return Action{Kind: ActionWriteToActive, Bytes: []byte{0x14}}, true
	}
	if k.Kind != KeyRune {
		return Action{}, false
	}
	switch k.Rune {
	case 'c':
		return Action{Kind: ActionCreateTerminal}, true
	case 'd':
		return Action{Kind: ActionCloseTerminal}, true
	case 'n':
		return Action{Kind: ActionSelectNext}, true
	case 'p':
		return Action{Kind: ActionSelectPrev}, true
	case 'q':
		return Action{Kind: ActionQuit}, true
	case 'o':
		return Action{Kind: ActionToggleFocus}, true
	}
	if k.Rune >= '1' && k.Rune <= '9' {
		return Action{Kind: ActionSelectByIndex, Index: int(k.Rune - '1')}, true
	}
	return Action{}, false
}

// handleModal is the ScrollbackMode navigation binding; DialogInput
// produces no actions at all (the outer layer owns those keys).
func (t *Translator) handleModal(k Key) (Action, bool) {
	if t.mode == ModeDialogInput {
		return Action{}, false
	}
	if k.Kind != KeyRune {
		return Action{}, false
	}
	switch k.Rune {
	case 'j':
		return Action{Kind: ActionScrollbackDown, N: 1}, true
	case 'k':
		return Action{Kind: ActionScrollbackUp, N: 1}, true
	case 'g':
		return Action{Kind: ActionScrollbackTop}, true
	case 'G':
		return Action{Kind: ActionScrollbackBottom}, true
	}
	return Action{}, false
}
