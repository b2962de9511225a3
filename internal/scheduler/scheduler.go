// Package scheduler scans habits against the wall clock and surfaces at most
// one reminder prompt at a time.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/habit"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
	"habitbuddy/internal/utils"
)

// Notifier receives the user-visible side effects of the reminder lifecycle.
// Implementations are best-effort; the scheduler never fails on their account.
type Notifier interface {
	// Remind is called when a prompt is raised for a habit.
	Remind(h models.Habit)
	// CheckinDone is called after a successful mark-as-done dismissal.
	CheckinDone(h models.Habit)
	// Snoozed is called when a prompt is snoozed.
	Snoozed(h models.Habit)
}

// Prompt is the currently surfaced reminder.
type Prompt struct {
	Habit    models.Habit
	RaisedAt time.Time
}

// Scheduler owns the reminder tick loop and the single outstanding prompt.
// The habit service's clock drives all time decisions, so tests steer both
// through one SetNowFunc.
type Scheduler struct {
	mu       sync.Mutex
	svc      *habit.Service
	store    storage.Provider
	notifier Notifier
	snooze   time.Duration
	active   *Prompt
	cron     *cron.Cron
}

func New(svc *habit.Service, store storage.Provider, notifier Notifier) *Scheduler {
	return &Scheduler{
		svc:      svc,
		store:    store,
		notifier: notifier,
		snooze:   constants.SnoozeDuration,
	}
}

// SetSnoozeDuration overrides the default snooze window.
func (s *Scheduler) SetSnoozeDuration(d time.Duration) {
	if d > 0 {
		s.snooze = d
	}
}

// Active returns a copy of the outstanding prompt, or nil when none is up.
func (s *Scheduler) Active() *Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	p := Prompt{Habit: s.active.Habit.Clone(), RaisedAt: s.active.RaisedAt}
	return &p
}

// Tick runs one reminder scan. It returns the prompt it raised, or nil when
// nothing became due. While a prompt is outstanding the scan is skipped
// entirely, so at most one prompt exists across the app.
func (s *Scheduler) Tick() *Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return nil
	}

	now := s.svc.Now()
	today := utils.DateKey(now)
	weekday := utils.Weekday(now)

	for _, h := range s.svc.Snapshot() {
		if !s.due(h, now, today, weekday) {
			continue
		}

		s.active = &Prompt{Habit: h, RaisedAt: now}
		s.notifier.Remind(h)
		p := Prompt{Habit: h.Clone(), RaisedAt: now}
		// First match in list order wins; the rest wait for later ticks.
		return &p
	}
	return nil
}

// due applies the per-habit skip rules from the tick scan.
func (s *Scheduler) due(h models.Habit, now time.Time, today string, weekday int) bool {
	r := h.Reminder
	if r == nil || !r.FiresOn(weekday) {
		return false
	}
	if h.CheckedInOn(today) {
		return false
	}

	notified, err := s.store.NotifiedToday(h.ID, today)
	if err != nil {
		logger.Warn("Failed to read notified marker", "habit", h.ID, "error", err)
		return false
	}
	if notified {
		return false
	}

	if until, ok, err := s.store.SnoozedUntil(h.ID); err != nil {
		logger.Warn("Failed to read snooze marker", "habit", h.ID, "error", err)
		return false
	} else if ok {
		if now.Before(until) {
			return false
		}
		// Elapsed snooze markers are cleared so they cannot linger forever.
		if err := s.store.ClearSnooze(h.ID); err != nil {
			logger.Warn("Failed to clear elapsed snooze", "habit", h.ID, "error", err)
		}
	}

	target, err := utils.ParseTimeToMinutes(r.Time)
	if err != nil {
		logger.Warn("Invalid reminder time, skipping habit", "habit", h.ID, "time", r.Time)
		return false
	}
	return utils.MinuteDistance(utils.MinutesOfDay(now), target) <= r.EffectiveWindow()/2
}

// MarkDone dismisses the active prompt by checking the habit in. On success
// the notified marker is set and the celebratory cue fires; on failure the
// prompt stays up and the result carries the gate's message.
func (s *Scheduler) MarkDone() habit.CheckinResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return habit.CheckinResult{Message: habit.MsgHabitNotFound}
	}

	h := s.active.Habit
	res := s.svc.ToggleCheckinToday(h.ID)
	if !res.Success {
		return res
	}

	s.setNotified(h.ID)
	s.active = nil
	s.notifier.CheckinDone(h)
	return res
}

// Snooze dismisses the active prompt for the snooze window. The notified
// marker is deliberately not set, so the prompt re-surfaces once the window
// elapses within the same day. The marker is an absolute timestamp and thus
// survives a date rollover near midnight.
func (s *Scheduler) Snooze() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return fmt.Errorf("no active reminder to snooze")
	}

	h := s.active.Habit
	until := s.svc.Now().Add(s.snooze)
	if err := s.store.SetSnoozedUntil(h.ID, until); err != nil {
		return fmt.Errorf("failed to persist snooze marker: %w", err)
	}

	s.active = nil
	s.notifier.Snoozed(h)
	return nil
}

// Close dismisses the active prompt for the rest of the calendar day.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}
	s.setNotified(s.active.Habit.ID)
	s.active = nil
	return nil
}

func (s *Scheduler) setNotified(habitID string) {
	today := s.svc.TodayKey()
	if err := s.store.SetNotifiedToday(habitID, today); err != nil {
		logger.Error("Failed to persist notified marker", "habit", habitID, "error", err)
	}
}

// Start launches the recurring tick loop: an immediate scan, then one every
// interval. Calling Start twice without Stop is an error.
func (s *Scheduler) Start(interval time.Duration) error {
	s.mu.Lock()
	if s.cron != nil {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}
	c := cron.New()
	s.cron = c
	s.mu.Unlock()

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() { s.Tick() }); err != nil {
		return fmt.Errorf("failed to schedule reminder tick: %w", err)
	}

	s.Tick()
	c.Start()
	logger.Info("Reminder scheduler started", "interval", interval)
	return nil
}

// Stop halts the tick loop and waits for an in-flight scan to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		logger.Info("Reminder scheduler stopped")
	}
}
