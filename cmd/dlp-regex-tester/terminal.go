package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isColorTerminal returns true if w is a terminal and NO_COLOR is unset
func isColorTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}
