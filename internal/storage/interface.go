package storage

import (
	"fmt"
	"time"

	"habitbuddy/internal/models"
)

// Provider is the durable key-value storage backing the habit list and the
// ephemeral per-habit markers. Implementations are not safe for concurrent
// use; the application is single-writer by design.
type Provider interface {
	// Lifecycle
	Load() error
	Close() error

	// Fresh reports whether Load created brand-new storage this run. The
	// habit store uses this to decide first-run sample seeding: a fresh
	// store gets samples, an explicitly cleared one stays empty.
	Fresh() bool

	// Habits
	GetHabits() ([]models.Habit, error)
	SaveHabits([]models.Habit) error

	// Markers
	NotifiedToday(habitID, dateKey string) (bool, error)
	SetNotifiedToday(habitID, dateKey string) error
	SnoozedUntil(habitID string) (time.Time, bool, error)
	SetSnoozedUntil(habitID string, until time.Time) error
	ClearSnooze(habitID string) error
	LastCheckinAt() (time.Time, bool, error)
	SetLastCheckinAt(t time.Time) error

	// Utils
	GetStoragePath() string
}

const (
	storeVersion = 1

	lastCheckinKey = "last-checkin-ts"

	markerSet = "1"
)

func notifiedKey(habitID, dateKey string) string {
	return fmt.Sprintf("notified:%s:%s", habitID, dateKey)
}

func snoozeKey(habitID string) string {
	return fmt.Sprintf("snooze-until:%s", habitID)
}
