package cli

import (
	"fmt"

	"habitbuddy/internal/models"
)

type CheckinCmd struct {
	Habit string `arg:"" help:"Habit id or title."`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	h, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	res := svc.ToggleCheckinToday(h.ID)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	updated, _ := svc.Get(h.ID)
	stats := svc.StatsFor(updated)
	badge, _ := models.BadgeByLevel(updated.Badge)
	fmt.Printf("Checked in: %s %s\n", updated.Title, badge.Icon)
	fmt.Printf("Current streak: %d day(s), longest: %d. Badge: %s (%d/%d days).\n",
		stats.Current, stats.Longest, badge.Name, updated.CompletedDays(), updated.DaysTarget)
	return nil
}
