package utils

import (
	"testing"
	"time"
)

func TestDateKeyRoundTrip(t *testing.T) {
	ref := time.Date(2025, 3, 9, 14, 30, 0, 0, time.Local)
	key := DateKey(ref)
	if key != "2025-03-09" {
		t.Errorf("DateKey() = %q, want 2025-03-09", key)
	}

	parsed, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("ParseDateKey() error = %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 9 {
		t.Errorf("ParseDateKey() = %v, want 2025-03-09", parsed)
	}
}

func TestPrevNextDateKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantPrev string
		wantNext string
	}{
		{"mid month", "2025-03-15", "2025-03-14", "2025-03-16"},
		{"month boundary", "2025-03-01", "2025-02-28", "2025-03-02"},
		{"year boundary", "2025-01-01", "2024-12-31", "2025-01-02"},
		{"leap february", "2024-02-29", "2024-02-28", "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrevDateKey(tt.key); got != tt.wantPrev {
				t.Errorf("PrevDateKey(%q) = %q, want %q", tt.key, got, tt.wantPrev)
			}
			if got := NextDateKey(tt.key); got != tt.wantNext {
				t.Errorf("NextDateKey(%q) = %q, want %q", tt.key, got, tt.wantNext)
			}
		})
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		timeStr string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseTimeToMinutes(tt.timeStr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTimeToMinutes(%q) error = %v, wantErr %v", tt.timeStr, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseTimeToMinutes(%q) = %d, want %d", tt.timeStr, got, tt.want)
		}
	}
}

func TestMinuteDistanceWrapsAtMidnight(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
	}{
		{"same minute", 480, 480, 0},
		{"direct difference", 600, 480, 120},
		{"wraparound shorter", 5, 23*60 + 50, 15},
		{"wraparound symmetric", 23*60 + 50, 5, 15},
		{"half day either way", 0, 720, 720},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinuteDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("MinuteDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
