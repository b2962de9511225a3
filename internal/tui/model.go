// Package tui is the interactive dashboard: the habit list with check-in
// actions, a stats tab, and the reminder prompt overlay driven by the
// scheduler tick.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/habit"
	"habitbuddy/internal/models"
	"habitbuddy/internal/scheduler"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateStats
	StateAddHabit
	StateConfirmDelete
	StateReminderPrompt
)

type statsPeriod int

const (
	periodWeekly statsPeriod = iota
	periodMonthly
	periodYearly
)

// habitForm backs the add-habit overlay.
type habitForm struct {
	Title    string
	Category string
}

type Model struct {
	svc   *habit.Service
	sched *scheduler.Scheduler

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	habits []models.Habit
	cursor int
	period statsPeriod
	status string

	form     *huh.Form
	formData *habitForm
	deleteID string
	prompt   *scheduler.Prompt

	quitting bool
	width    int
	height   int
}

// tickMsg drives the reminder scan.
type tickMsg time.Time

func NewModel(svc *habit.Service, sched *scheduler.Scheduler) Model {
	return Model{
		svc:    svc,
		sched:  sched,
		state:  StateHabits,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		habits: svc.Snapshot(),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateHabits:
		keys = append(keys, m.keys.Enter, m.keys.Add, m.keys.Delete)
	case StateStats:
		keys = append(keys, m.keys.Period)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help},
		{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Add, m.keys.Delete, m.keys.Period},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(scheduleTick(), func() tea.Msg { return tickMsg(time.Now()) })
}

func scheduleTick() tea.Cmd {
	return tea.Tick(constants.ReminderTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the habit list and clamps the cursor.
func (m *Model) refresh() {
	m.habits = m.svc.Snapshot()
	if m.cursor >= len(m.habits) {
		m.cursor = len(m.habits) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) openAddForm() {
	m.formData = &habitForm{Category: models.Categories[0].ID}

	options := make([]huh.Option[string], 0, len(models.Categories))
	for _, cat := range models.Categories {
		options = append(options, huh.NewOption(cat.Name, cat.ID))
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Habit title").
			Value(&m.formData.Title),
		huh.NewSelect[string]().
			Title("Category").
			Options(options...).
			Value(&m.formData.Category),
	))
	m.previousState = m.state
	m.state = StateAddHabit
}
