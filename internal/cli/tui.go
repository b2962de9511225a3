package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"habitbuddy/internal/notifier"
	"habitbuddy/internal/scheduler"
	"habitbuddy/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	n := notifier.New(notifier.NewDesktop(), ctx.Config.Notifications.Enabled, ctx.Config.Notifications.Sound)
	sched := scheduler.New(svc, ctx.Store, n)
	sched.SetSnoozeDuration(ctx.Config.SnoozeDuration())

	p := tea.NewProgram(tui.NewModel(svc, sched), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
