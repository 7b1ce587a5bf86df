package ptyio

import (
	"errors"
	"fmt"

	"climux/internal/vtmodel"
)

// ErrPtySpawn is the sentinel wrapped by spawn failures.
var ErrPtySpawn = errors.New("ptyio: spawn failed")

// ErrPtyIo is the sentinel wrapped by read/write/resize/kill failures.
var ErrPtyIo = errors.New("ptyio: io failed")

// ErrTerminalNotFound is the sentinel wrapped when an id is unknown
// to the backend.
var ErrTerminalNotFound = errors.New("ptyio: terminal not found")

// TerminalNotFoundError carries the offending id.
type TerminalNotFoundError struct {
	ID vtmodel.TerminalId
}

func (e *TerminalNotFoundError) Error() string {
	return fmt.Sprintf("ptyio: terminal not found: %s", e.ID)
}

func (e *TerminalNotFoundError) Unwrap() error { return ErrTerminalNotFound }
