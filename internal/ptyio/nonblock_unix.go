//go:build unix

package ptyio

import (
	"errors"
	"os"
	"syscall"
)

// setNonblocking puts the pty master fd in non-blocking mode so Read
// returns immediately instead of blocking when no child output is
// available.
func setNonblocking(f *os.File) error {
	return syscall.SetNonblock(int(f.Fd()), true)
}

// isWouldBlock reports whether err is the EAGAIN/EWOULDBLOCK a
// non-blocking read returns when there is nothing to read yet.
func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}
