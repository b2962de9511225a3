package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.state != StateReminderPrompt {
			if p := m.sched.Tick(); p != nil {
				m.prompt = p
				m.previousState = m.state
				m.state = StateReminderPrompt
			}
		}
		return m, scheduleTick()
	}

	switch m.state {
	case StateAddHabit:
		return m.updateAddForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateReminderPrompt:
		return m.updateReminderPrompt(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateMain(msg)
	}
	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % 2
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + 1) % 2
	case key.Matches(msg, m.keys.Period):
		if m.state == StateStats {
			m.period = (m.period + 1) % 3
		}
	case key.Matches(msg, m.keys.Up):
		if m.state == StateHabits && m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.state == StateHabits && m.cursor < len(m.habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.state == StateHabits && len(m.habits) > 0 {
			res := m.svc.ToggleCheckinToday(m.habits[m.cursor].ID)
			if res.Success {
				m.status = fmt.Sprintf("Checked in: %s 🎉", m.habits[m.cursor].Title)
			} else {
				m.status = res.Message
			}
			m.refresh()
		}
	case key.Matches(msg, m.keys.Add):
		if m.state == StateHabits {
			m.openAddForm()
			return m, m.form.Init()
		}
	case key.Matches(msg, m.keys.Delete):
		if m.state == StateHabits && len(m.habits) > 0 {
			m.deleteID = m.habits[m.cursor].ID
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
	}
	return m, nil
}

func (m Model) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if _, err := m.svc.Add(m.formData.Title, m.formData.Category, nil); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Added habit: %s", m.formData.Title)
		}
		m.refresh()
		m.state = m.previousState
		return m, nil
	}
	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		if err := m.svc.Remove(m.deleteID); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Habit deleted."
		}
		m.refresh()
		m.state = m.previousState
	case "n", "esc":
		m.state = m.previousState
	}
	return m, nil
}

// updateReminderPrompt handles the overlay raised by the scheduler: mark as
// done, snooze, or dismiss for the day.
func (m Model) updateReminderPrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "d", "enter":
		res := m.sched.MarkDone()
		if !res.Success {
			// A refused check-in leaves the prompt up; the user can still
			// snooze or dismiss explicitly.
			m.status = res.Message
			return m, nil
		}
		m.status = fmt.Sprintf("Checked in: %s 🎉", m.prompt.Habit.Title)
		m.prompt = nil
		m.refresh()
		m.state = m.previousState
	case "s":
		if err := m.sched.Snooze(); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("Snoozed: %s", m.prompt.Habit.Title)
		}
		m.prompt = nil
		m.state = m.previousState
	case "c", "esc", "q":
		if err := m.sched.Close(); err != nil {
			m.status = err.Error()
		}
		m.prompt = nil
		m.state = m.previousState
	}
	return m, nil
}
