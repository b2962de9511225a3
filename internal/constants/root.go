package constants

import "time"

const (
	AppName = "habitbuddy"
	Version = "v0.3.0"

	DefaultStoragePath = "~/.config/habitbuddy/habitbuddy.db"
	DefaultConfigPath  = "~/.config/habitbuddy/config.yaml"

	// DateFormat is the standard date key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Reminder constants
	DefaultReminderWindowMin = 120
	MinReminderWindowMin     = 5
	MaxReminderWindowMin     = 1440
	ReminderTickInterval     = 30 * time.Second
	SnoozeDuration           = 5 * time.Minute

	// Check-in constants
	ClockTamperGrace   = 2 * time.Minute
	ClockSkewAllowance = 2 * time.Second

	// ProvisionalDaysTarget is the day target used before any badge tier
	// applies, when the habit's category carries no suggestion of its own.
	ProvisionalDaysTarget = 30

	// Import/export constants
	ExportVersion    = "1.0"
	ExportFilePrefix = "habitbuddy-export-"
	CopyTitleSuffix  = " (Copy)"
)

// Palette is the fixed habit color cycle, assigned by creation order.
var Palette = []string{
	"#ff6b6b", "#ffd166", "#06d6a0", "#4d96ff", "#b388eb", "#ffa07a", "#7dd3fc",
}
