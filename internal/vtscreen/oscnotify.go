package vtscreen

import (
	"strings"

	"climux/internal/vtmodel"
)

// ansicode.Handler has no callback for OSC 9 or OSC 777: both are
// nonstandard notification conventions (iTerm2/Windows Terminal and
// rxvt-unicode respectively) outside the xterm surface the library
// models. danielgatis-go-headless-term's own NotificationPayload
// middleware hook is unwired scaffolding, not a real callback, which
// confirms the gap is in the library rather than in how it's used
// here. scanNotifications is therefore a second, narrow, resumable
// byte scan that runs alongside decoder.Write, watching only for
// "ESC ] 9 ;" and "ESC ] 777 ;" and ignoring everything else -- it
// does not re-implement CSI/SGR/UTF-8 parsing, which stays entirely
// the decoder's job.
type oscScanState int

const (
	oscIdle oscScanState = iota
	oscSawEsc
	oscInBody
	oscBodyEsc
)

func (s *Screen) scanNotifications(data []byte) {
	for _, b := range data {
		switch s.oscState {
		case oscIdle:
			if b == 0x1B {
				s.oscState = oscSawEsc
			}
		case oscSawEsc:
			if b == ']' {
				s.oscBuf = s.oscBuf[:0]
				s.oscState = oscInBody
			} else {
				s.oscState = oscIdle
			}
		case oscInBody:
			switch b {
			case 0x07:
				s.dispatchNotifyOSC(s.oscBuf)
				s.oscState = oscIdle
			case 0x1B:
				s.oscState = oscBodyEsc
			default:
				s.oscBuf = append(s.oscBuf, b)
			}
		case oscBodyEsc:
			if b == '\\' {
				s.dispatchNotifyOSC(s.oscBuf)
				s.oscState = oscIdle
			} else {
				s.oscBuf = append(s.oscBuf, 0x1B, b)
				s.oscState = oscInBody
			}
		}
	}
}

// dispatchNotifyOSC inspects a fully-buffered OSC payload (terminator
// stripped) for the "9;" or "777;" codes; any other code is ignored
// since it's already handled by the real decoder (title, OSC 7, ...).
func (s *Screen) dispatchNotifyOSC(payload []byte) {
	text := string(payload)
	code, rest, ok := splitOSC(text)
	if !ok {
		return
	}
	switch code {
	case "9":
		s.enqueueNotification(vtmodel.NotificationEvent{
			Kind:    vtmodel.NotificationOsc9,
			Message: rest,
		})
	case "777":
		s.dispatch777(rest)
	}
}

func splitOSC(text string) (code, rest string, ok bool) {
	idx := strings.IndexByte(text, ';')
	if idx < 0 {
		return text, "", text != ""
	}
	return text[:idx], text[idx+1:], true
}

// dispatch777 handles "notify;title;body"; any other keyword or fewer
// than the three remaining fields is ignored silently.
func (s *Screen) dispatch777(rest string) {
	fields := strings.SplitN(rest, ";", 3)
	if len(fields) != 3 || fields[0] != "notify" {
		return
	}
	s.enqueueNotification(vtmodel.NotificationEvent{
		Kind:  vtmodel.NotificationOsc777,
		Title: fields[1],
		Body:  fields[2],
	})
}
