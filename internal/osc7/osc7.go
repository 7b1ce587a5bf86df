// Package osc7 decodes OSC 7 "current working directory" escape
// payloads of the form file://host/path into a plain filesystem path.
package osc7

import "strings"

const prefix = "file://"

// ParseURI extracts and percent-decodes the path component of a
// file:// URI. It returns false if uri does not begin with "file://"
// or has no '/' after the host component (an empty host is fine: the
// slash immediately follows the prefix).
func ParseURI(uri string) (string, bool) {
	afterPrefix, ok := strings.CutPrefix(uri, prefix)
	if !ok {
		return "", false
	}
	slashPos := strings.IndexByte(afterPrefix, '/')
	if slashPos < 0 {
		return "", false
	}
	encoded := afterPrefix[slashPos:]
	return percentDecode(encoded), true
}

// percentDecode decodes %XY triples where X and Y are hex digits.
// An invalid triple (non-hex digit, or too few trailing bytes) is
// passed through literally rather than causing an error. The decoded
// byte stream is converted to UTF-8, falling back to a lossy
// conversion if it is not valid UTF-8.
func percentDecode(input string) string {
	b := []byte(input)
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		if b[i] == '%' && i+2 < len(b) {
			hi, okHi := hexVal(b[i+1])
			lo, okLo := hexVal(b[i+2])
			if okHi && okLo {
				out = append(out, hi<<4|lo)
				i += 3
				continue
			}
		}
		out = append(out, b[i])
		i++
	}
	return toUTF8Lossy(out)
}

func hexVal(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	default:
		return 0, false
	}
}

// toUTF8Lossy returns the input as a string, replacing any invalid
// UTF-8 sequences with the Unicode replacement character.
func toUTF8Lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
