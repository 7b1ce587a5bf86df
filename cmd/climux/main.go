// Command climux is the reference outer loop: it wires the screen
// engine, session manager, input translator, notification limiter,
// and dispatcher together behind a raw-mode terminal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
