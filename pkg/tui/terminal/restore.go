// ABOUTME: RestoreOnPanic recovers from panics, leaves the session, and prints the stack trace.
// ABOUTME: Intended for use as a deferred call in the goroutine that owns the terminal.

package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

var osExit = os.Exit

// exit is swapped in tests.
var exit = osExit

// RestoreOnPanic should be deferred at the top of main (or any goroutine
// that owns the terminal). On panic it leaves the session, prints the panic
// value and stack trace, then exits with code 1.
func RestoreOnPanic(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	reportPanic(os.Stderr, s, "panic", r)
	exit(1)
}

// RecoverGoroutine should be deferred at the top of background goroutines
// that run while the session is active. Unlike RestoreOnPanic it does not
// exit, leaving shutdown to the owner.
func RecoverGoroutine(s *Session) {
	r := recover()
	if r == nil {
		return
	}
	reportPanic(os.Stderr, s, "goroutine panic", r)
}

func reportPanic(w io.Writer, s *Session, label string, r any) {
	if s != nil {
		_ = s.Leave()
	}
	fmt.Fprintf(w, "\n%s: %v\n\n%s\n", label, r, debug.Stack())
}
