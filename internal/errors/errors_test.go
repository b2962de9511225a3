package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	err := fmt.Errorf("failed to open storage: %w", fmt.Errorf("permission denied"))
	want := "Error: failed to open storage: permission denied"
	if got := Format(err); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
