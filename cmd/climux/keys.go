package main

import (
	"unicode/utf8"

	"climux/internal/inputxlate"
)

// decodeKeys turns a raw chunk of stdin bytes into zero or more Key
// events. CSI arrow/Home/End/Delete sequences are recognized;
// anything else single-byte in the C0 range maps to its control
// meaning, and everything else decodes as UTF-8 runes.
func decodeKeys(buf []byte) []inputxlate.Key {
	var keys []inputxlate.Key
	i := 0
	for i < len(buf) {
		b := buf[i]
		switch {
		case b == 0x1B && i+2 < len(buf) && buf[i+1] == '[':
			if k, n, ok := decodeCSIKey(buf[i:]); ok {
				keys = append(keys, k)
				i += n
				continue
			}
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyEsc})
			i++
		case b == 0x1B:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyEsc})
			i++
		case b == 0x0D || b == 0x0A:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyEnter})
			i++
		case b == 0x7F || b == 0x08:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyBackspace})
			i++
		case b == 0x09:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyTab})
			i++
		case b >= 0x01 && b <= 0x1A:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyRune, Rune: rune(b + 0x60), Control: true})
			i++
		case b < 0x80:
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyRune, Rune: rune(b)})
			i++
		default:
			r, size := utf8.DecodeRune(buf[i:])
			if r == utf8.RuneError && size <= 1 {
				i++
				continue
			}
			keys = append(keys, inputxlate.Key{Kind: inputxlate.KeyRune, Rune: r})
			i += size
		}
	}
	return keys
}

// decodeCSIKey recognizes the "ESC [ X" cursor-key forms plus
// "ESC [ 3 ~" (Delete); the SS3 "ESC O X" forms are not recognized.
// Returns the number of bytes consumed.
func decodeCSIKey(buf []byte) (inputxlate.Key, int, bool) {
	if len(buf) >= 3 && buf[1] == '[' {
		switch buf[2] {
		case 'A':
			return inputxlate.Key{Kind: inputxlate.KeyUp}, 3, true
		case 'B':
			return inputxlate.Key{Kind: inputxlate.KeyDown}, 3, true
		case 'C':
			return inputxlate.Key{Kind: inputxlate.KeyRight}, 3, true
		case 'D':
			return inputxlate.Key{Kind: inputxlate.KeyLeft}, 3, true
		case 'H':
			return inputxlate.Key{Kind: inputxlate.KeyHome}, 3, true
		case 'F':
			return inputxlate.Key{Kind: inputxlate.KeyEnd}, 3, true
		case '3':
			if len(buf) >= 4 && buf[3] == '~' {
				return inputxlate.Key{Kind: inputxlate.KeyDelete}, 4, true
			}
		}
	}
	return inputxlate.Key{}, 0, false
}
