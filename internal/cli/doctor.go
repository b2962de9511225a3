package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"habitbuddy/internal/notifier"
	"habitbuddy/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	svc, err := ctx.Service()
	if err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK (%s)\n", ctx.Store.GetStoragePath())
	}

	if svc != nil {
		if err := checkHabitData(ctx); err != nil {
			fmt.Printf("❌ Habit data: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit data: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit data: SKIPPED (storage not reachable)\n")
	}

	if err := checkClock(ctx); err != nil {
		fmt.Printf("⚠ Clock/timezone: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	if err := checkSecondInstance(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	if notifier.NewDesktop().IsSupported() {
		fmt.Printf("✓ Desktop notifications: OK\n")
	} else {
		fmt.Printf("⚠ Desktop notifications: WARNING\n")
		fmt.Printf("   No notification backend found; reminders fall back to the terminal bell.\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

// checkHabitData validates the stored habit list: unique ids, parseable
// check-in date keys, no future-dated check-ins, valid reminder times.
func checkHabitData(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	today := svc.TodayKey()
	seen := make(map[string]bool)
	var problems []string

	for _, h := range svc.Snapshot() {
		if seen[h.ID] {
			problems = append(problems, fmt.Sprintf("duplicate habit id %s", h.ID))
		}
		seen[h.ID] = true

		for key := range h.CheckIns {
			if _, err := utils.ParseDateKey(key); err != nil {
				problems = append(problems, fmt.Sprintf("%s: malformed check-in date %q", h.Title, key))
			} else if key > today {
				problems = append(problems, fmt.Sprintf("%s: future-dated check-in %q", h.Title, key))
			}
		}

		if h.Reminder != nil && !utils.ValidateTimeFormat(h.Reminder.Time) {
			problems = append(problems, fmt.Sprintf("%s: invalid reminder time %q", h.Title, h.Reminder.Time))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

// checkClock flags a wall clock behind the last recorded check-in attempt,
// which would trip the tamper heuristic on the next check-in.
func checkClock(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %v", now)
	}

	last, ok, err := ctx.Store.LastCheckinAt()
	if err == nil && ok && now.Before(last) {
		return fmt.Errorf("clock is behind the last check-in (%v); check-ins may be rejected as tampering", last)
	}
	return nil
}

// checkSecondInstance warns when another habitbuddy process is running, since
// two writers against the same store can clobber each other.
func checkSecondInstance() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not list processes: %v", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && strings.HasPrefix(p.Executable(), "habitbuddy") {
			return fmt.Errorf("another habitbuddy process is running (pid %d); concurrent writes can lose data", p.Pid())
		}
	}
	return nil
}
