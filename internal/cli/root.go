// Package cli implements the habitbuddy command surface.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"habitbuddy/internal/config"
	"habitbuddy/internal/habit"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
)

// Context carries the shared dependencies every command runs against. The
// habit service is built lazily so commands that fail argument validation
// never touch storage.
type Context struct {
	Store  storage.Provider
	Config *config.Config
	Debug  bool

	svc *habit.Service
}

// Service loads storage on first use and reuses the service for the rest of
// the invocation.
func (c *Context) Service() (*habit.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	svc, err := habit.NewService(c.Store)
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

// resolveHabit accepts a habit id or a (case-insensitive) title.
func resolveHabit(svc *habit.Service, ref string) (models.Habit, error) {
	if h, ok := svc.Get(ref); ok {
		return h, nil
	}
	if h, ok := svc.GetByTitle(ref); ok {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("no habit matching %q", ref)
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func parseWeekdays(s string) ([]int, error) {
	dayMap := map[string]int{
		"sun": 0, "sunday": 0,
		"mon": 1, "monday": 1,
		"tue": 2, "tuesday": 2,
		"wed": 3, "wednesday": 3,
		"thu": 4, "thursday": 4,
		"fri": 5, "friday": 5,
		"sat": 6, "saturday": 6,
	}

	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if d, ok := dayMap[part]; ok {
			days = append(days, d)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, num)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays given")
	}
	return days, nil
}

func formatDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	var names []string
	for _, d := range days {
		if d >= 0 && d <= 6 {
			names = append(names, dayNames[d])
		}
	}
	if len(names) == 0 {
		return "never"
	}
	return strings.Join(names, ",")
}

func formatReminder(r *models.Reminder) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s (±%dmin)", r.Time, formatDays(r.Days), r.EffectiveWindow()/2)
}
