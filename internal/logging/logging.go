// Package logging provides a package-level logger written to a file,
// since stdout is occupied by the TUI's alternate screen.
package logging

import (
	"io"
	"log"
	"os"
)

var std = log.New(io.Discard, "", log.LstdFlags)

// Init points the logger at path, creating/appending to it. Call
// once at startup; before that, log output is discarded.
func Init(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	std = log.New(f, "", log.LstdFlags)
	return nil
}

// Printf logs a formatted line.
func Printf(format string, args ...any) { std.Printf(format, args...) }
