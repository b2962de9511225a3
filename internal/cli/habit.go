package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

type HabitAddCmd struct {
	Title    string `arg:"" optional:"" help:"Habit title. Omit to use an interactive form."`
	Category string `short:"c" help:"Category id (health|fitness|learning|productivity|mindfulness)." default:"health"`
	Time     string `short:"t" help:"Reminder time (HH:MM). No reminder when omitted."`
	Days     string `short:"d" help:"Comma-separated reminder weekdays (e.g. mon,wed,fri)."`
	Window   int    `short:"w" help:"Reminder window in minutes." default:"120"`
}

func (c *HabitAddCmd) Validate() error {
	if c.Category != "" && !validCategory(c.Category) {
		return fmt.Errorf("unknown category: %s", c.Category)
	}
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid reminder time: %s (expected HH:MM)", c.Time)
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.Title == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	var reminder *models.Reminder
	if c.Time != "" {
		days := []int{0, 1, 2, 3, 4, 5, 6}
		if c.Days != "" {
			if days, err = parseWeekdays(c.Days); err != nil {
				return err
			}
		}
		reminder = &models.Reminder{Time: c.Time, Days: days, Window: c.Window}
	}

	h, err := svc.Add(c.Title, c.Category, reminder)
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %s)\n", h.Title, h.ID)
	if h.Reminder != nil {
		fmt.Printf("Reminder: %s\n", formatReminder(h.Reminder))
	}
	return nil
}

// promptForm collects the title and category interactively.
func (c *HabitAddCmd) promptForm() error {
	options := make([]huh.Option[string], 0, len(models.Categories))
	for _, cat := range models.Categories {
		options = append(options, huh.NewOption(cat.Name, cat.ID))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Habit title").
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title must not be empty")
				}
				return nil
			}).
			Value(&c.Title),
		huh.NewSelect[string]().
			Title("Category").
			Options(options...).
			Value(&c.Category),
	))
	return form.Run()
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	habits := svc.Snapshot()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with: habitbuddy habit add <title>")
		return nil
	}

	fmt.Printf("%-24s %-13s %-13s %8s %9s  %s\n",
		"TITLE", "CATEGORY", "BADGE", "STREAK", "DONE", "REMINDER")
	for _, h := range habits {
		stats := svc.StatsFor(h)
		badge, _ := models.BadgeByLevel(h.Badge)
		fmt.Printf("%-24s %-13s %-13s %8d %6d/%-2d  %s\n",
			truncate(h.Title, 24),
			models.CategoryByID(h.CategoryID).Name,
			badge.Name,
			stats.Current,
			h.CompletedDays(), h.DaysTarget,
			formatReminder(h.Reminder))
	}
	return nil
}

type HabitRemoveCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *HabitRemoveCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	h, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}
	if err := svc.Remove(h.ID); err != nil {
		return err
	}
	fmt.Printf("Removed habit: %s\n", h.Title)
	return nil
}

func validCategory(id string) bool {
	for _, cat := range models.Categories {
		if cat.ID == id {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
