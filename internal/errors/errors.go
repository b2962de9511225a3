// Package errors renders failures at the CLI boundary. Command errors bubble
// up as plain Go errors; this package turns them into the stderr line the
// user sees and mirrors them into the log file.
package errors

import (
	"fmt"
	"os"

	"habitbuddy/internal/logger"
)

// Format renders err as the single "Error: ..." line printed to the terminal.
// A nil error renders empty.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is a
// no-op so call sites can pass results through unconditionally.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Exiting on fatal error", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
