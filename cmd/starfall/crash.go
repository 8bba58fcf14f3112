package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// handleCrash restores the terminal and prints the panic with its stack trace
func handleCrash(screen tcell.Screen, r any) {
	if r == nil {
		return
	}

	// Restore terminal to sane state immediately
	screen.Fini()

	// Use \r\n in case the terminal is still in raw mode
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mSTARFALL CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	_ = os.Stderr.Sync()

	os.Exit(1)
}
