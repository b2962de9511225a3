package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"habitbuddy/internal/fsutil"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
)

type fileStore struct {
	Version int               `json:"version"`
	Habits  []models.Habit    `json:"habits"`
	Markers map[string]string `json:"markers"`
}

// JSONStore persists the whole store as a single pretty-printed JSON document,
// rewritten atomically on every mutation.
type JSONStore struct {
	path  string
	store *fileStore
	fresh bool
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: initialize empty storage.
			s.store = emptyFileStore()
			s.fresh = true
			return s.save()
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// A corrupt store degrades to an empty list rather than erroring;
		// the damaged file is preserved alongside for manual recovery.
		logger.Warn("Storage file unreadable, starting empty", "path", s.path, "error", err)
		_ = os.WriteFile(s.path+".corrupt", data, 0600)
		s.store = emptyFileStore()
		return nil
	}

	// Ensure collections are initialized
	if s.store.Habits == nil {
		s.store.Habits = []models.Habit{}
	}
	if s.store.Markers == nil {
		s.store.Markers = make(map[string]string)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Fresh() bool {
	return s.fresh
}

func emptyFileStore() *fileStore {
	return &fileStore{
		Version: storeVersion,
		Habits:  []models.Habit{},
		Markers: make(map[string]string),
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return models.CloneHabits(s.store.Habits), nil
}

func (s *JSONStore) SaveHabits(habits []models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Habits = models.CloneHabits(habits)
	return s.save()
}

func (s *JSONStore) NotifiedToday(habitID, dateKey string) (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	_, ok := s.store.Markers[notifiedKey(habitID, dateKey)]
	return ok, nil
}

func (s *JSONStore) SetNotifiedToday(habitID, dateKey string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Markers[notifiedKey(habitID, dateKey)] = markerSet
	return s.save()
}

func (s *JSONStore) SnoozedUntil(habitID string) (time.Time, bool, error) {
	if s.store == nil {
		return time.Time{}, false, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.store.Markers[snoozeKey(habitID)]
	if !ok {
		return time.Time{}, false, nil
	}
	until, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return until, true, nil
}

func (s *JSONStore) SetSnoozedUntil(habitID string, until time.Time) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Markers[snoozeKey(habitID)] = until.Format(time.RFC3339)
	return s.save()
}

func (s *JSONStore) ClearSnooze(habitID string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Markers, snoozeKey(habitID))
	return s.save()
}

func (s *JSONStore) LastCheckinAt() (time.Time, bool, error) {
	if s.store == nil {
		return time.Time{}, false, fmt.Errorf("storage not loaded")
	}
	raw, ok := s.store.Markers[lastCheckinKey]
	if !ok {
		return time.Time{}, false, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

func (s *JSONStore) SetLastCheckinAt(t time.Time) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Markers[lastCheckinKey] = t.Format(time.RFC3339)
	return s.save()
}

// GetStoragePath returns the path to the underlying storage file.
func (s *JSONStore) GetStoragePath() string {
	return s.path
}
