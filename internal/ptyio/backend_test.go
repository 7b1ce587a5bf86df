package ptyio

import (
	"errors"
	"testing"
	"time"

	"climux/internal/vtmodel"
)

func TestSpawnReadWriteKill(t *testing.T) {
	b := NewBackend()
	id := vtmodel.TerminalId(1)
	size := vtmodel.TerminalSize{Cols: 80, Rows: 24}

	if err := b.Spawn(id, "/bin/sh -c 'read line; echo got:$line'", "/", size); err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer b.Kill(id)

	if err := b.Write(id, []byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	var out []byte
	for time.Now().Before(deadline) {
		chunk, err := b.Read(id)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		out = append(out, chunk...)
		if len(out) > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(out) == 0 {
		t.Fatalf("no output read from child")
	}
}

func TestReadUnknownID(t *testing.T) {
	b := NewBackend()
	_, err := b.Read(vtmodel.TerminalId(99))
	if err == nil {
		t.Fatalf("expected TerminalNotFoundError")
	}
	var nfErr *TerminalNotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected TerminalNotFoundError, got %v", err)
	}
}
