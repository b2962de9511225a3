package models

import "habitbuddy/internal/constants"

// Habit represents an aspirational, repeated action tracked one check-in per day.
type Habit struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	DaysTarget int               `json:"daysTarget"`
	CategoryID string            `json:"categoryId"`
	Color      string            `json:"color"`
	CreatedAt  string            `json:"createdAt"` // YYYY-MM-DD format
	CheckIns   map[string]string `json:"checkIns"`  // date key -> integrity token
	Reminder   *Reminder         `json:"reminder,omitempty"`
	Badge      BadgeLevel        `json:"badge,omitempty"`
}

// Reminder is a recurring notification schedule owned by a single habit.
type Reminder struct {
	Time   string `json:"time"`   // HH:MM format, 24-hour
	Days   []int  `json:"days"`   // weekday numbers, 0=Sunday..6=Saturday
	Window int    `json:"window"` // tolerance in minutes, interpreted as ±window/2
}

// HabitStats holds streak lengths derived from a habit's check-in set.
type HabitStats struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// TrendSeries holds label/value pairs for aggregate check-in counts.
type TrendSeries struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// CompletedDays returns the number of recorded check-ins.
func (h *Habit) CompletedDays() int {
	return len(h.CheckIns)
}

// CheckedInOn reports whether the habit has a check-in for the given date key.
func (h *Habit) CheckedInOn(dateKey string) bool {
	if h.CheckIns == nil {
		return false
	}
	_, ok := h.CheckIns[dateKey]
	return ok
}

// Clone returns a deep copy so snapshot readers cannot mutate store state.
func (h *Habit) Clone() Habit {
	clone := *h
	if h.CheckIns != nil {
		clone.CheckIns = make(map[string]string, len(h.CheckIns))
		for k, v := range h.CheckIns {
			clone.CheckIns[k] = v
		}
	}
	if h.Reminder != nil {
		r := *h.Reminder
		r.Days = append([]int(nil), h.Reminder.Days...)
		clone.Reminder = &r
	}
	return clone
}

// CloneHabits deep-copies a habit list.
func CloneHabits(habits []Habit) []Habit {
	out := make([]Habit, len(habits))
	for i := range habits {
		out[i] = habits[i].Clone()
	}
	return out
}

// EffectiveWindow returns the reminder window in minutes, falling back to the
// default when the stored value is missing or nonsensical.
func (r *Reminder) EffectiveWindow() int {
	if r.Window <= 0 {
		return constants.DefaultReminderWindowMin
	}
	return r.Window
}

// FiresOn reports whether the reminder is scheduled for the given weekday.
func (r *Reminder) FiresOn(weekday int) bool {
	for _, d := range r.Days {
		if d == weekday {
			return true
		}
	}
	return false
}
