package habit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

// User-facing check-in gate messages.
const (
	MsgHabitNotFound    = "Habit not found."
	MsgAlreadyCheckedIn = "Already checked in today."
	MsgClockTampering   = "Clock tampering detected. Check-in disabled."
	MsgNotScheduledDay  = "Today is not a scheduled reminder day for this habit."
	MsgCheckinFailed    = "Could not record check-in. Please try again."
)

// CheckinResult is the typed outcome of a check-in attempt. Failures carry a
// user-facing message and are never Go errors; the habit is left untouched.
type CheckinResult struct {
	Success bool
	Message string
}

func failure(msg string) CheckinResult {
	return CheckinResult{Success: false, Message: msg}
}

// ToggleCheckinToday records a check-in for today if the eligibility gate
// passes. Despite the name this is a forward-only action: a second call on
// the same day fails rather than un-checking.
func (s *Service) ToggleCheckinToday(habitID string) CheckinResult {
	var habit *models.Habit
	for i := range s.habits {
		if s.habits[i].ID == habitID {
			habit = &s.habits[i]
			break
		}
	}
	if habit == nil {
		return failure(MsgHabitNotFound)
	}

	now := s.now()
	today := utils.DateKey(now)

	if habit.CheckedInOn(today) {
		return failure(MsgAlreadyCheckedIn)
	}

	if ok, msg := s.canCheckIn(habit, now); !ok {
		return failure(msg)
	}

	// The attempt timestamp feeds future tamper checks and must land before
	// the check-in itself.
	if err := s.store.SetLastCheckinAt(now); err != nil {
		logger.Error("Failed to persist check-in timestamp", "habit", habitID, "error", err)
		return failure(MsgCheckinFailed)
	}

	if habit.CheckIns == nil {
		habit.CheckIns = make(map[string]string)
	}
	habit.CheckIns[today] = CheckinToken(habitID, today)

	completed := habit.CompletedDays()
	habit.Badge = models.BadgeForDays(completed).Level
	habit.DaysTarget = models.TargetDays(completed)

	if err := s.persist(); err != nil {
		// Roll the in-memory entry back so state matches storage.
		delete(habit.CheckIns, today)
		logger.Error("Failed to persist check-in", "habit", habitID, "error", err)
		return failure(MsgCheckinFailed)
	}

	return CheckinResult{Success: true}
}

// canCheckIn runs the eligibility gate: clock-tamper heuristic, then the
// reminder weekday and time-window rules. Habits without a reminder are
// eligible any day, any time.
func (s *Service) canCheckIn(habit *models.Habit, now time.Time) (bool, string) {
	if s.hasClockTampering(now) {
		return false, MsgClockTampering
	}

	if habit.Reminder == nil {
		return true, ""
	}

	if !habit.Reminder.FiresOn(utils.Weekday(now)) {
		return false, MsgNotScheduledDay
	}

	target, err := utils.ParseTimeToMinutes(habit.Reminder.Time)
	if err != nil {
		// An unparseable stored time cannot gate anything meaningfully.
		logger.Warn("Invalid reminder time, skipping window check", "habit", habit.ID, "time", habit.Reminder.Time)
		return true, ""
	}

	window := habit.Reminder.EffectiveWindow()
	if utils.MinuteDistance(utils.MinutesOfDay(now), target) > window/2 {
		return false, windowMessage(window)
	}

	return true, ""
}

// hasClockTampering reports whether the wall clock has jumped backward past
// the grace band relative to the last recorded check-in attempt. This is a
// heuristic deterrent only: it catches backward jumps larger than the grace
// window, not forward jumps or a cleared marker.
func (s *Service) hasClockTampering(now time.Time) bool {
	last, ok, err := s.store.LastCheckinAt()
	if err != nil || !ok {
		return false
	}
	return now.Add(constants.ClockSkewAllowance).Before(last.Add(-constants.ClockTamperGrace))
}

// CheckinToken derives the opaque integrity token stored for a check-in. The
// digest is stable so re-derivation over the same habit and day matches.
func CheckinToken(habitID, dateKey string) string {
	sum := sha256.Sum256([]byte(habitID + "|" + dateKey))
	return hex.EncodeToString(sum[:])
}

func windowMessage(window int) string {
	hours := math.Round(float64(window)/60*100) / 100
	return fmt.Sprintf("Check-in allowed only within %sh window around reminder.",
		strconv.FormatFloat(hours, 'f', -1, 64))
}
