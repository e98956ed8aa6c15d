package springball

import (
	"fmt"
	"io"
	"os"
)

// debugEnabled mirrors the most recent SetDebugMode call. The package is
// single-threaded, so a plain bool is enough.
var debugEnabled bool

// debugOut is where debug lines go. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug logging. When enabled, drag,
// release, settle and reload events are printed to stderr.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

// DebugMode reports whether debug logging is on.
func DebugMode() bool {
	return debugEnabled
}

// debugf prints a prefixed line when debug mode is on.
func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[springball] "+format+"\n", args...)
}

// debugCheckDisposed panics with a descriptive message when a disposed widget
// is used. Only called in debug mode; release builds ignore the misuse.
func debugCheckDisposed(w *Widget, op string) {
	if w.disposed {
		panic(fmt.Sprintf("springball debug: %s on disposed widget %q", op, w.Name))
	}
}
