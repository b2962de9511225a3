package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

type ReminderSetCmd struct {
	Habit  string `arg:"" help:"Habit id or title."`
	Time   string `short:"t" help:"Reminder time (HH:MM). Omit to use an interactive form."`
	Days   string `short:"d" help:"Comma-separated weekdays (e.g. mon,wed,fri). Defaults to every day."`
	Window int    `short:"w" help:"Check-in window in minutes." default:"120"`
}

func (c *ReminderSetCmd) Validate() error {
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid reminder time: %s (expected HH:MM)", c.Time)
	}
	return nil
}

func (c *ReminderSetCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	h, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	days := []int{0, 1, 2, 3, 4, 5, 6}
	if c.Days != "" {
		if days, err = parseWeekdays(c.Days); err != nil {
			return err
		}
	}

	if c.Time == "" {
		if days, err = c.promptForm(h.Title, days); err != nil {
			return err
		}
	}

	reminder := &models.Reminder{Time: c.Time, Days: days, Window: c.Window}
	if err := svc.UpdateReminder(h.ID, reminder); err != nil {
		return err
	}

	updated, _ := svc.Get(h.ID)
	fmt.Printf("Reminder for %s: %s\n", updated.Title, formatReminder(updated.Reminder))
	return nil
}

// promptForm collects time, days and window interactively.
func (c *ReminderSetCmd) promptForm(title string, defaultDays []int) ([]int, error) {
	days := defaultDays
	window := strconv.Itoa(c.Window)

	dayOptions := make([]huh.Option[int], 0, 7)
	for d, name := range dayNames {
		dayOptions = append(dayOptions, huh.NewOption(name, d).Selected(containsDay(days, d)))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Reminder time for %q", title)).
			Placeholder("08:00").
			Validate(func(s string) error {
				if !utils.ValidateTimeFormat(s) {
					return fmt.Errorf("expected HH:MM")
				}
				return nil
			}).
			Value(&c.Time),
		huh.NewMultiSelect[int]().
			Title("Days").
			Options(dayOptions...).
			Value(&days),
		huh.NewInput().
			Title("Window (minutes)").
			Validate(func(s string) error {
				if _, err := strconv.Atoi(s); err != nil {
					return fmt.Errorf("expected a number")
				}
				return nil
			}).
			Value(&window),
	))
	if err := form.Run(); err != nil {
		return nil, err
	}

	if w, err := strconv.Atoi(window); err == nil {
		c.Window = w
	}
	return days, nil
}

type ReminderClearCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *ReminderClearCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	h, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	if err := svc.UpdateReminder(h.ID, nil); err != nil {
		return err
	}
	fmt.Printf("Cleared reminder for %s\n", h.Title)
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	habits := svc.HabitsWithReminders()
	if len(habits) == 0 {
		fmt.Println("No reminders set.")
		return nil
	}

	fmt.Printf("%-24s %s\n", "TITLE", "REMINDER")
	for _, h := range habits {
		fmt.Printf("%-24s %s\n", truncate(h.Title, 24), formatReminder(h.Reminder))
	}
	return nil
}

func containsDay(days []int, d int) bool {
	for _, v := range days {
		if v == d {
			return true
		}
	}
	return false
}
