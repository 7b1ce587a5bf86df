// Package inputxlate implements the prefix-key input state machine:
// ordinary keys translate to child-bound bytes, while a prefix
// combo (Ctrl+t by default) opens a one-key command window.
package inputxlate

// KeyKind tags a host key event.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
)

// Key is a single host key event, as the outer loop's terminal
// reader would produce it.
type Key struct {
	Kind    KeyKind
	Rune    rune // valid when Kind == KeyRune
	Control bool
}

// bytesForKey implements spec.md §4.F's key-to-bytes mapping.
// application_cursor_keys selects between the `ESC O X` and `ESC [ X`
// forms for arrows/Home/End; Delete always sends `ESC [ 3 ~`.
func bytesForKey(k Key, applicationCursorKeys bool) []byte {
	switch k.Kind {
	case KeyRune:
		if k.Control {
			c := lowerASCII(k.Rune)
			if c >= 'a' && c <= 'z' {
				return []byte{byte(c) - 0x60}
			}
			return nil
		}
		return []byte(string(k.Rune))
	case KeyEnter:
		return []byte{0x0D}
	case KeyBackspace:
		return []byte{0x7F}
	case KeyTab:
		return []byte{0x09}
	case KeyEsc:
		return []byte{0x1B}
	case KeyUp:
		return cursorKeySeq('A', applicationCursorKeys)
	case KeyDown:
		return cursorKeySeq('B', applicationCursorKeys)
	case KeyRight:
		return cursorKeySeq('C', applicationCursorKeys)
	case KeyLeft:
		return cursorKeySeq('D', applicationCursorKeys)
	case KeyHome:
		return cursorKeySeq('H', applicationCursorKeys)
	case KeyEnd:
		return cursorKeySeq('F', applicationCursorKeys)
	case KeyDelete:
		return []byte{0x1B, '[', '3', '~'}
	default:
		return nil
	}
}

func cursorKeySeq(final byte, applicationCursorKeys bool) []byte {
	if applicationCursorKeys {
		return []byte{0x1B, 'O', final}
	}
	return []byte{0x1B, '[', final}
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
