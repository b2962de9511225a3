package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"

	"habitbuddy/internal/logger"
	"habitbuddy/internal/notifier"
	"habitbuddy/internal/scheduler"
)

type RemindRunCmd struct {
	Once        bool `help:"Run a single reminder scan and exit."`
	Interactive bool `short:"i" help:"Prompt for done/snooze/dismiss in the terminal."`
}

func (c *RemindRunCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	n := notifier.New(notifier.NewDesktop(), ctx.Config.Notifications.Enabled, ctx.Config.Notifications.Sound)
	sched := scheduler.New(svc, ctx.Store, n)
	sched.SetSnoozeDuration(ctx.Config.SnoozeDuration())

	if c.Once {
		if p := sched.Tick(); p != nil {
			return c.handle(sched, p)
		}
		fmt.Println("No reminders due.")
		return nil
	}

	interval := ctx.Config.TickInterval()
	if err := sched.Start(interval); err != nil {
		return err
	}
	defer sched.Stop()
	fmt.Printf("Reminder daemon running (scan every %s). Ctrl-C to stop.\n", interval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	poll := time.NewTicker(time.Second)
	defer poll.Stop()

	for {
		select {
		case <-sig:
			fmt.Println("\nStopping reminder daemon.")
			return nil
		case <-poll.C:
			if p := sched.Active(); p != nil {
				if err := c.handle(sched, p); err != nil {
					logger.Warn("Failed to handle reminder prompt", "habit", p.Habit.Title, "error", err)
				}
			}
		}
	}
}

// handle dismisses the surfaced prompt. Non-interactive runs close it right
// after the notification went out, so each habit notifies once per day.
func (c *RemindRunCmd) handle(sched *scheduler.Scheduler, p *scheduler.Prompt) error {
	if !c.Interactive {
		return sched.Close()
	}

	choice := "done"
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(fmt.Sprintf("Reminder: %s", p.Habit.Title)).
			Options(
				huh.NewOption("Mark as done", "done"),
				huh.NewOption("Snooze 5 minutes", "snooze"),
				huh.NewOption("Dismiss for today", "close"),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return sched.Close()
	}

	switch choice {
	case "done":
		if res := sched.MarkDone(); !res.Success {
			fmt.Println(res.Message)
			return sched.Close()
		}
		return nil
	case "snooze":
		return sched.Snooze()
	default:
		return sched.Close()
	}
}
