package ptyio

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/google/shlex"

	"climux/internal/vtmodel"
)

// childEntry holds one child process's pty handles. exitCh receives
// exactly one value, sent by a dedicated reaper goroutine started at
// Spawn time, so TryWait can poll for exit without blocking the
// single-threaded caller. Writing to exitCh is the only cross-thread
// interaction in this package; it carries no shared mutable state.
type childEntry struct {
	cmd    *exec.Cmd
	ptm    *os.File
	exitCh chan int32
}

// Backend is the creack/pty-backed Port implementation: one real
// child process and pty pair per TerminalId.
type Backend struct {
	children map[vtmodel.TerminalId]*childEntry
	readBuf  []byte
}

// NewBackend returns an empty pty backend.
func NewBackend() *Backend {
	return &Backend{
		children: make(map[vtmodel.TerminalId]*childEntry),
		readBuf:  make([]byte, 64*1024),
	}
}

// Spawn starts shellCommand (split with shlex so quoted arguments
// survive) in a new pty sized to size, with cwd as its working
// directory. TERM=xterm-256color and TERM_PROGRAM=Apple_Terminal are
// set on the child so cooperating shells emit OSC 7.
func (b *Backend) Spawn(id vtmodel.TerminalId, shellCommand string, cwd string, size vtmodel.TerminalSize) error {
	args, err := shlex.Split(shellCommand)
	if err != nil || len(args) == 0 {
		return fmt.Errorf("%w: invalid shell command %q: %v", ErrPtySpawn, shellCommand, err)
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = cwd
	cmd.Env = append(withoutKeys(os.Environ(), "TERM", "TERM_PROGRAM"),
		"TERM=xterm-256color",
		"TERM_PROGRAM=Apple_Terminal",
	)

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: size.Rows,
		Cols: size.Cols,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPtySpawn, err)
	}
	if err := setNonblocking(ptm); err != nil {
		ptm.Close()
		cmd.Process.Kill()
		return fmt.Errorf("%w: set nonblocking: %v", ErrPtySpawn, err)
	}
	entry := &childEntry{cmd: cmd, ptm: ptm, exitCh: make(chan int32, 1)}
	b.children[id] = entry
	go func() {
		err := cmd.Wait()
		if err == nil {
			entry.exitCh <- int32(cmd.ProcessState.ExitCode())
			return
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			entry.exitCh <- int32(exitErr.ExitCode())
			return
		}
		entry.exitCh <- -1
	}()
	return nil
}

func withoutKeys(env []string, keys ...string) []string {
	out := make([]string, 0, len(env))
	for _, e := range env {
		skip := false
		for _, k := range keys {
			if len(e) > len(k) && e[:len(k)] == k && e[len(k)] == '=' {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, e)
		}
	}
	return out
}

func (b *Backend) entry(id vtmodel.TerminalId) (*childEntry, error) {
	e, ok := b.children[id]
	if !ok {
		return nil, &TerminalNotFoundError{ID: id}
	}
	return e, nil
}

// Read drains whatever is currently available on id's pty master. A
// would-block error from the non-blocking fd is reported as an empty,
// nil-error read; any other error is PtyIo.
func (b *Backend) Read(id vtmodel.TerminalId) ([]byte, error) {
	e, err := b.entry(id)
	if err != nil {
		return nil, err
	}
	n, err := e.ptm.Read(b.readBuf)
	if err != nil {
		if isWouldBlock(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read: %v", ErrPtyIo, err)
	}
	out := make([]byte, n)
	copy(out, b.readBuf[:n])
	return out, nil
}

// Write writes all of p to id's pty master.
func (b *Backend) Write(id vtmodel.TerminalId, p []byte) error {
	e, err := b.entry(id)
	if err != nil {
		return err
	}
	if _, err := e.ptm.Write(p); err != nil {
		return fmt.Errorf("%w: write: %v", ErrPtyIo, err)
	}
	return nil
}

// Resize updates id's pty window size.
func (b *Backend) Resize(id vtmodel.TerminalId, size vtmodel.TerminalSize) error {
	e, err := b.entry(id)
	if err != nil {
		return err
	}
	if err := pty.Setsize(e.ptm, &pty.Winsize{Rows: size.Rows, Cols: size.Cols}); err != nil {
		return fmt.Errorf("%w: resize: %v", ErrPtyIo, err)
	}
	return nil
}

// TryWait reports whether id's child has exited, without blocking.
// The actual wait/reap happens on a background goroutine started at
// Spawn time; this just drains its result channel.
func (b *Backend) TryWait(id vtmodel.TerminalId) (int32, bool) {
	e, err := b.entry(id)
	if err != nil {
		return 0, false
	}
	select {
	case code := <-e.exitCh:
		e.exitCh <- code // leave it available for a repeat TryWait
		return code, true
	default:
		return 0, false
	}
}

// Kill forcibly terminates and reaps id's child.
func (b *Backend) Kill(id vtmodel.TerminalId) error {
	e, err := b.entry(id)
	if err != nil {
		return err
	}
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
		e.cmd.Process.Wait()
	}
	closeErr := e.ptm.Close()
	delete(b.children, id)
	if closeErr != nil {
		return fmt.Errorf("%w: kill: %v", ErrPtyIo, closeErr)
	}
	return nil
}
