package cli

import (
	"fmt"
	"strings"

	"habitbuddy/internal/habit"
	"habitbuddy/internal/models"
)

type StatsCmd struct {
	Period string `short:"p" help:"Trend period (weekly|monthly|yearly)." enum:"weekly,monthly,yearly" default:"weekly"`
	Habit  string `arg:"" optional:"" help:"Show details for a single habit (id or title)."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.Habit != "" {
		return c.habitDetail(svc)
	}

	habits := svc.Snapshot()
	fmt.Printf("Habits:             %d\n", len(habits))
	fmt.Printf("Total check-ins:    %d\n", svc.TotalCompleted())
	fmt.Printf("Average completion: %d%%\n", svc.AverageCompletion())
	fmt.Printf("Best streak:        %d current / %d longest\n",
		svc.BestCurrentStreak(), svc.BestLongestStreak())
	fmt.Println()

	var trend models.TrendSeries
	label := "Weekly"
	switch c.Period {
	case "monthly":
		trend = svc.MonthlyTrend()
		label = "Monthly"
	case "yearly":
		trend = svc.YearlyTrend()
		label = "Yearly"
	default:
		trend = svc.WeeklyTrend()
	}
	printTrend(label, trend)
	return nil
}

func (c *StatsCmd) habitDetail(svc *habit.Service) error {
	h, err := resolveHabit(svc, c.Habit)
	if err != nil {
		return err
	}

	stats := svc.StatsFor(h)
	badge, _ := models.BadgeByLevel(h.Badge)
	completed := h.CompletedDays()

	fmt.Printf("%s %s\n", h.Title, badge.Icon)
	fmt.Printf("Category:       %s\n", models.CategoryByID(h.CategoryID).Name)
	fmt.Printf("Created:        %s\n", h.CreatedAt)
	fmt.Printf("Badge:          %s (%s)\n", badge.Name, badge.Description)
	fmt.Printf("Completed days: %d of %d\n", completed, h.DaysTarget)
	fmt.Printf("Streak:         %d current / %d longest\n", stats.Current, stats.Longest)
	if next, ok := models.NextBadge(completed); ok {
		fmt.Printf("Next badge:     %s at %d days (%d%% there)\n",
			next.Name, next.DaysRequired, models.ProgressToNextLevel(completed))
	} else {
		fmt.Println("Next badge:     top tier reached")
	}
	fmt.Printf("Reminder:       %s\n", formatReminder(h.Reminder))
	return nil
}

func printTrend(label string, trend models.TrendSeries) {
	fmt.Printf("%s check-ins:\n", label)
	max := 0
	for _, v := range trend.Data {
		if v > max {
			max = v
		}
	}
	for i, l := range trend.Labels {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", trend.Data[i]*20/max)
		}
		fmt.Printf("%4s %3d %s\n", l, trend.Data[i], bar)
	}
}
