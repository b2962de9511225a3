package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateCountsRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short ascii untouched", "Read", 24, "Read"},
		{"long ascii shortened", strings.Repeat("a", 30), 24, strings.Repeat("a", 23) + "…"},
		{"exact length untouched", "日本語のタイトル", 7, "日本語のタイトル"},
		{"multibyte shortened", "毎日のストレッチと瞑想の習慣", 8, "毎日のストレッ…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.max, got)
			}
		})
	}
}
