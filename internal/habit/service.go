// Package habit owns the canonical habit list and the check-in engine.
package habit

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
	"habitbuddy/internal/streak"
	"habitbuddy/internal/utils"
)

// Service is the single writer of the habit list. All other components read a
// Snapshot and submit intents back through it; every mutation persists
// synchronously before returning.
type Service struct {
	store  storage.Provider
	habits []models.Habit
	now    func() time.Time
}

// NewService loads the habit list from storage. A fresh store (first run) is
// seeded with sample habits; a load failure degrades to an empty list rather
// than surfacing an error.
func NewService(store storage.Provider) (*Service, error) {
	s := &Service{store: store, now: time.Now}

	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	habits, err := store.GetHabits()
	if err != nil {
		logger.Warn("Failed to load habits, starting empty", "error", err)
		habits = []models.Habit{}
	}
	s.habits = habits

	if store.Fresh() && len(habits) == 0 {
		if err := s.LoadSampleHabits(); err != nil {
			return nil, fmt.Errorf("failed to seed sample habits: %w", err)
		}
	}

	return s, nil
}

// SetNowFunc overrides the clock used by time-dependent operations.
// Passing nil resets it to time.Now.
func (s *Service) SetNowFunc(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// Now returns the current time according to the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// TodayKey returns today's date key according to the service clock.
func (s *Service) TodayKey() string {
	return utils.DateKey(s.now())
}

// Snapshot returns a deep copy of the current habit list.
func (s *Service) Snapshot() []models.Habit {
	return models.CloneHabits(s.habits)
}

// Get returns a copy of the habit with the given id.
func (s *Service) Get(id string) (models.Habit, bool) {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return s.habits[i].Clone(), true
		}
	}
	return models.Habit{}, false
}

// GetByTitle returns a copy of the first habit whose title matches
// case-insensitively.
func (s *Service) GetByTitle(title string) (models.Habit, bool) {
	for i := range s.habits {
		if strings.EqualFold(s.habits[i].Title, title) {
			return s.habits[i].Clone(), true
		}
	}
	return models.Habit{}, false
}

// Add creates a habit and prepends it to the list. The color is assigned by
// creation order, cycling through the fixed palette; the day target starts at
// the category's suggested value until the first badge recomputation.
func (s *Service) Add(title, categoryID string, reminder *models.Reminder) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, fmt.Errorf("habit title must not be empty")
	}

	target := models.CategoryByID(categoryID).Days
	if target <= 0 {
		target = constants.ProvisionalDaysTarget
	}

	h := models.Habit{
		ID:         uuid.New().String(),
		Title:      title,
		DaysTarget: target,
		CategoryID: categoryID,
		Color:      constants.Palette[len(s.habits)%len(constants.Palette)],
		CreatedAt:  s.TodayKey(),
		CheckIns:   map[string]string{},
		Reminder:   NormalizeReminder(reminder),
	}

	s.habits = append([]models.Habit{h}, s.habits...)
	if err := s.persist(); err != nil {
		return models.Habit{}, err
	}
	return h.Clone(), nil
}

// Remove deletes a habit by id. Removing an unknown id is a no-op.
func (s *Service) Remove(id string) error {
	kept := s.habits[:0]
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	return s.persist()
}

// UpdateReminder replaces only the reminder field of the habit. A nil
// reminder removes it.
func (s *Service) UpdateReminder(id string, reminder *models.Reminder) error {
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i].Reminder = NormalizeReminder(reminder)
			return s.persist()
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

// ReplaceAll bulk-sets the habit list, fully overwriting persisted state.
// Used by import, sample loading and clear-all.
func (s *Service) ReplaceAll(habits []models.Habit) error {
	s.habits = models.CloneHabits(habits)
	return s.persist()
}

// ClearAll removes every habit.
func (s *Service) ClearAll() error {
	return s.ReplaceAll([]models.Habit{})
}

func (s *Service) persist() error {
	if err := s.store.SaveHabits(s.habits); err != nil {
		return fmt.Errorf("failed to persist habits: %w", err)
	}
	return nil
}

// NormalizeReminder clamps the window to the sane range and deduplicates the
// weekday set. Nil passes through (no reminder configured).
func NormalizeReminder(r *models.Reminder) *models.Reminder {
	if r == nil {
		return nil
	}
	out := models.Reminder{Time: r.Time, Window: r.Window}
	if out.Window < constants.MinReminderWindowMin {
		out.Window = constants.MinReminderWindowMin
	}
	if out.Window > constants.MaxReminderWindowMin {
		out.Window = constants.MaxReminderWindowMin
	}

	seen := make(map[int]bool)
	for _, d := range r.Days {
		if d >= 0 && d <= 6 && !seen[d] {
			seen[d] = true
			out.Days = append(out.Days, d)
		}
	}
	sort.Ints(out.Days)
	if out.Days == nil {
		out.Days = []int{}
	}
	return &out
}

// StatsFor computes current/longest streaks for a habit, anchored at today.
func (s *Service) StatsFor(h models.Habit) models.HabitStats {
	return streak.Calc(h.CheckIns, s.TodayKey())
}

// TotalCompleted is the sum of check-in counts across all habits.
func (s *Service) TotalCompleted() int {
	total := 0
	for i := range s.habits {
		total += s.habits[i].CompletedDays()
	}
	return total
}

// AverageCompletion is the rounded mean of per-habit completion percentages,
// or 0 when no habits exist.
func (s *Service) AverageCompletion() int {
	if len(s.habits) == 0 {
		return 0
	}
	total := 0.0
	for i := range s.habits {
		h := &s.habits[i]
		target := h.DaysTarget
		if target <= 0 {
			target = constants.ProvisionalDaysTarget
		}
		total += float64(h.CompletedDays()) / float64(target) * 100
	}
	return int(total/float64(len(s.habits)) + 0.5)
}

// BestCurrentStreak is the maximum current streak over all habits, 0 floor.
func (s *Service) BestCurrentStreak() int {
	best := 0
	for i := range s.habits {
		if cur := s.StatsFor(s.habits[i]).Current; cur > best {
			best = cur
		}
	}
	return best
}

// BestLongestStreak is the maximum longest streak over all habits, 0 floor.
func (s *Service) BestLongestStreak() int {
	best := 0
	for i := range s.habits {
		if longest := s.StatsFor(s.habits[i]).Longest; longest > best {
			best = longest
		}
	}
	return best
}

// HabitsWithReminders returns copies of every habit with a reminder set.
func (s *Service) HabitsWithReminders() []models.Habit {
	var out []models.Habit
	for i := range s.habits {
		if s.habits[i].Reminder != nil {
			out = append(out, s.habits[i].Clone())
		}
	}
	return out
}
