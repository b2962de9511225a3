package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"habitbuddy/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateStats:
		content = docStyle.Render(m.viewStats())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateReminderPrompt:
		content = m.viewReminderPrompt()
	default:
		content = docStyle.Render(m.viewHabits())
	}

	status := ""
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Stats"} {
		style := inactiveTabStyle
		if int(m.tabIndex()) == i {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// tabIndex maps overlay states back to the tab they were opened from.
func (m Model) tabIndex() SessionState {
	switch m.state {
	case StateHabits, StateStats:
		return m.state
	default:
		return m.previousState
	}
}

func (m Model) viewHabits() string {
	if len(m.habits) == 0 {
		return mutedStyle.Render("No habits yet. Press 'a' to add one.")
	}

	today := m.svc.TodayKey()
	var rows []string
	for i, h := range m.habits {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render("●")

		check := "  "
		if h.CheckedInOn(today) {
			check = checkedStyle.Render("✓ ")
		}

		stats := m.svc.StatsFor(h)
		badge, _ := models.BadgeByLevel(h.Badge)
		line := fmt.Sprintf("%s %s%-24s %s %-12s streak %-3d %d/%d",
			dot, check, truncate(h.Title, 24), badge.Icon, badge.Name,
			stats.Current, h.CompletedDays(), h.DaysTarget)

		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewStats() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Habits:             %d\n", len(m.habits))
	fmt.Fprintf(&b, "Total check-ins:    %d\n", m.svc.TotalCompleted())
	fmt.Fprintf(&b, "Average completion: %d%%\n", m.svc.AverageCompletion())
	fmt.Fprintf(&b, "Best streak:        %d current / %d longest\n\n",
		m.svc.BestCurrentStreak(), m.svc.BestLongestStreak())

	var trend models.TrendSeries
	label := "Weekly"
	switch m.period {
	case periodMonthly:
		trend = m.svc.MonthlyTrend()
		label = "Monthly"
	case periodYearly:
		trend = m.svc.YearlyTrend()
		label = "Yearly"
	default:
		trend = m.svc.WeeklyTrend()
	}

	fmt.Fprintf(&b, "%s check-ins (press 'p' to cycle):\n", label)
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
		fmt.Fprintf(&b, "%4s %3d %s\n", l, trend.Data[i], bar)
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	title := ""
	for _, h := range m.habits {
		if h.ID == m.deleteID {
			title = h.Title
			break
		}
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and its history?", title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewReminderPrompt() string {
	if m.prompt == nil {
		return ""
	}

	r := m.prompt.Habit.Reminder
	when := ""
	if r != nil {
		when = mutedStyle.Render(fmt.Sprintf("reminder set for %s", r.Time))
	}

	box := promptStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		fmt.Sprintf("⏰ Time for %q", m.prompt.Habit.Title),
		when,
		"",
		"[d] Mark as done",
		"[s] Snooze 5 minutes",
		"[c] Dismiss for today",
	))
	return lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, box)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
