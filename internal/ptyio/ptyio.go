// Package ptyio defines the PTY operations contract consumed by the
// session manager and a concrete creack/pty-backed implementation.
package ptyio

import (
	"climux/internal/vtmodel"
)

// Port is the narrow operations contract the session manager uses to
// drive child processes. It is shared-nothing per id; the caller
// serializes access (the spec's single-threaded cooperative model
// means this is always the outer loop's goroutine).
type Port interface {
	// Spawn launches shellCommand in a pty of the given size with cwd
	// as its working directory, keyed by id. The master side is
	// placed in non-blocking mode.
	Spawn(id vtmodel.TerminalId, shellCommand string, cwd string, size vtmodel.TerminalSize) error
	// Read returns bytes available from id's pty master. An empty,
	// nil-error result means would-block, not EOF.
	Read(id vtmodel.TerminalId) ([]byte, error)
	// Write writes all of p to id's pty master.
	Write(id vtmodel.TerminalId, p []byte) error
	// Resize updates id's pty window size.
	Resize(id vtmodel.TerminalId, size vtmodel.TerminalSize) error
	// TryWait reports whether id's child has exited and, if so, its
	// exit code.
	TryWait(id vtmodel.TerminalId) (exitCode int32, exited bool)
	// Kill forcibly terminates and reaps id's child, releasing its fds.
	Kill(id vtmodel.TerminalId) error
}
