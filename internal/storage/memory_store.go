package storage

import (
	"time"

	"habitbuddy/internal/models"
)

// MemoryStore is an in-memory Provider used by tests and the import preview
// path. It satisfies the same contract as the durable stores without touching
// the filesystem.
type MemoryStore struct {
	habits  []models.Habit
	markers map[string]string
	fresh   bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		habits:  []models.Habit{},
		markers: make(map[string]string),
		fresh:   true,
	}
}

func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }
func (s *MemoryStore) Fresh() bool  { return s.fresh }

// SetFresh lets tests simulate a previously used store.
func (s *MemoryStore) SetFresh(fresh bool) { s.fresh = fresh }

func (s *MemoryStore) GetHabits() ([]models.Habit, error) {
	return models.CloneHabits(s.habits), nil
}

func (s *MemoryStore) SaveHabits(habits []models.Habit) error {
	s.habits = models.CloneHabits(habits)
	return nil
}

func (s *MemoryStore) NotifiedToday(habitID, dateKey string) (bool, error) {
	_, ok := s.markers[notifiedKey(habitID, dateKey)]
	return ok, nil
}

func (s *MemoryStore) SetNotifiedToday(habitID, dateKey string) error {
	s.markers[notifiedKey(habitID, dateKey)] = markerSet
	return nil
}

func (s *MemoryStore) SnoozedUntil(habitID string) (time.Time, bool, error) {
	raw, ok := s.markers[snoozeKey(habitID)]
	if !ok {
		return time.Time{}, false, nil
	}
	until, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return until, true, nil
}

func (s *MemoryStore) SetSnoozedUntil(habitID string, until time.Time) error {
	s.markers[snoozeKey(habitID)] = until.Format(time.RFC3339)
	return nil
}

func (s *MemoryStore) ClearSnooze(habitID string) error {
	delete(s.markers, snoozeKey(habitID))
	return nil
}

func (s *MemoryStore) LastCheckinAt() (time.Time, bool, error) {
	raw, ok := s.markers[lastCheckinKey]
	if !ok {
		return time.Time{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

func (s *MemoryStore) SetLastCheckinAt(t time.Time) error {
	s.markers[lastCheckinKey] = t.Format(time.RFC3339)
	return nil
}

func (s *MemoryStore) GetStoragePath() string {
	return "(memory)"
}
