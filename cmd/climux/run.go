package main

import (
	"os"
	"time"

	"golang.org/x/term"

	"climux/internal/config"
	"climux/internal/dispatch"
	"climux/internal/inputxlate"
	"climux/internal/logging"
	"climux/internal/notifyrate"
	"climux/internal/ptyio"
	"climux/internal/sessionmgr"
	"climux/internal/vtmodel"
	"climux/internal/vtscreen"
)

const (
	enterAltScreen   = "\x1b[?1049h"
	exitAltScreen    = "\x1b[?1049l"
	enableBracketed  = "\x1b[?2004h"
	disableBracketed = "\x1b[?2004l"
	pollWait         = 50 * time.Millisecond
)

// runOuterLoop implements the §6 outer-loop contract: raw mode + alt
// screen + bracketed paste on entry, PollAll/timeout/key-poll/dispatch
// each iteration, and a clean teardown on Quit.
func runOuterLoop(cfg *config.Config) error {
	stdinFd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(stdinFd)
	if err != nil {
		return err
	}
	defer term.Restore(stdinFd, oldState)

	os.Stdout.WriteString(enterAltScreen + enableBracketed)
	defer os.Stdout.WriteString(disableBracketed + exitAltScreen)

	cols, rows, err := term.GetSize(stdinFd)
	if err != nil {
		cols, rows = 80, 24
	}
	size := vtmodel.TerminalSize{Cols: uint16(cols), Rows: uint16(rows)}

	backend := ptyio.NewBackend()
	screens := vtscreen.NewManager()
	cwd, _ := os.Getwd()
	session := sessionmgr.NewManager(backend, screens, cwd, cfg.MaxScrollbackLines)
	translator := inputxlate.New(inputxlate.ParsePrefixKey(cfg.PrefixKey))
	limiter := notifyrate.New(notifyrate.MacOSBackend{})
	limiter.SetCooldown(cfg.NotificationCooldown)
	disp := dispatch.New(session, cfg.Shell)

	if _, err := session.CreateTerminal("", cfg.Shell, size); err != nil {
		return err
	}

	stdinCh := startStdinReader()
	defer session.Shutdown()

	for {
		session.PollAll()
		for _, p := range session.TakePendingNotifications() {
			limiter.Notify(p.Source, p.Event)
		}

		if active := session.ActiveTerminal(); active != nil {
			if appCursor, err := screens.GetApplicationCursorKeys(active.ID); err == nil {
				translator.SetApplicationCursorKeys(appCursor)
			}
			if grid, err := screens.GetCells(active.ID); err == nil {
				cursor, _ := screens.GetCursor(active.ID)
				visible, _ := screens.GetCursorVisible(active.ID)
				render(grid, cursor, visible)
			}
		}

		if action, ok := translator.CheckTimeout(); ok {
			if action.Kind == inputxlate.ActionQuit {
				return nil
			}
			disp.Dispatch(action)
		}

		select {
		case chunk, open := <-stdinCh:
			if !open {
				return nil
			}
			for _, k := range decodeKeys(chunk) {
				action, ok := translator.HandleKey(k)
				if !ok {
					continue
				}
				if action.Kind == inputxlate.ActionQuit {
					return nil
				}
				if action.Kind == inputxlate.ActionCreateTerminal {
					action.Size = size
				}
				disp.Dispatch(action)
			}
		case <-time.After(pollWait):
		}

		logging.Printf("tick: %d terminals, active=%d", len(session.Terminals()), session.ActiveIndex())
	}
}

// startStdinReader runs a blocking read loop on its own goroutine
// (the only permitted background activity: the outer loop's select
// only ever consumes, never blocks beyond pollWait) and forwards each
// chunk read to the returned channel.
func startStdinReader() <-chan []byte {
	ch := make(chan []byte)
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := os.Stdin.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				ch <- chunk
			}
			if err != nil {
				close(ch)
				return
			}
		}
	}()
	return ch
}
