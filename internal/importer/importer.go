// Package importer merges externally supplied habit lists into the store with
// duplicate-by-title resolution. Every import is all-or-nothing.
package importer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/habit"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/models"
)

// DuplicateAction selects how incoming habits whose titles collide with
// existing ones are handled.
type DuplicateAction string

const (
	ActionSkip     DuplicateAction = "skip"
	ActionReplace  DuplicateAction = "replace"
	ActionKeepBoth DuplicateAction = "keep-both"
)

// User-facing import messages.
const (
	MsgInvalidFormat = "Invalid JSON format. Expected an array of habits."
	MsgImportFailed  = "Failed to import habits. Please try again."
)

// Result is the outcome of an import attempt. Duplicates lists the incoming
// titles that collided with existing habits, nil when none did.
type Result struct {
	Success    bool
	Duplicates []string
	Message    string
}

// Preview describes what an import would do without performing it.
type Preview struct {
	Success     bool
	TotalHabits int
	NewHabits   int
	Duplicates  []string
	Message     string
}

// Engine runs imports against a habit service.
type Engine struct {
	svc *habit.Service
}

func New(svc *habit.Service) *Engine {
	return &Engine{svc: svc}
}

// Import merges the payload using the default skip policy: duplicates are
// dropped, everything else is appended with a fresh id.
func (e *Engine) Import(jsonText []byte) Result {
	incoming, ok := parseAndValidate(jsonText)
	if !ok {
		return Result{Message: MsgInvalidFormat}
	}

	existing := e.svc.Snapshot()
	var duplicates []string
	var fresh []models.Habit
	for _, in := range incoming {
		if findByTitle(existing, in.Title) >= 0 {
			duplicates = append(duplicates, in.Title)
			continue
		}
		fresh = append(fresh, sanitize(in))
	}

	if err := e.svc.ReplaceAll(append(existing, fresh...)); err != nil {
		logger.Error("Import failed to persist", "error", err)
		e.restore(existing)
		return Result{Message: MsgImportFailed}
	}

	msg := fmt.Sprintf("Successfully imported %d habits.", len(fresh))
	if len(duplicates) > 0 {
		msg = fmt.Sprintf("Imported %d new habits. %d duplicates found and skipped.",
			len(fresh), len(duplicates))
	}
	return Result{Success: true, Duplicates: duplicates, Message: msg}
}

// ImportWithOptions merges the payload applying the given duplicate policy.
// An unknown action behaves like skip.
func (e *Engine) ImportWithOptions(jsonText []byte, action DuplicateAction) Result {
	incoming, ok := parseAndValidate(jsonText)
	if !ok {
		return Result{Message: MsgInvalidFormat}
	}

	merged := e.svc.Snapshot()
	existing := models.CloneHabits(merged)

	var duplicates []string
	imported := 0
	replaced := 0
	for _, in := range incoming {
		idx := findByTitle(merged, in.Title)
		if idx < 0 {
			merged = append(merged, sanitize(in))
			imported++
			continue
		}

		duplicates = append(duplicates, in.Title)
		switch action {
		case ActionReplace:
			// The incoming version takes the original's slot.
			merged[idx] = sanitize(in)
			imported++
			replaced++
		case ActionKeepBoth:
			copyHabit := sanitize(in)
			copyHabit.Title += constants.CopyTitleSuffix
			merged = append(merged, copyHabit)
			imported++
		default:
			// skip
		}
	}

	if err := e.svc.ReplaceAll(merged); err != nil {
		logger.Error("Import failed to persist", "action", action, "error", err)
		e.restore(existing)
		return Result{Message: MsgImportFailed}
	}

	msg := fmt.Sprintf("Successfully imported %d habits.", imported)
	if len(duplicates) > 0 {
		switch action {
		case ActionReplace:
			msg = fmt.Sprintf("Imported %d habits. Replaced %d existing habits.", imported, replaced)
		case ActionKeepBoth:
			msg = fmt.Sprintf("Imported %d habits. Added %d as copies.", imported, len(duplicates))
		default:
			msg = fmt.Sprintf("Imported %d new habits. Skipped %d duplicates.", imported, len(duplicates))
		}
	}
	return Result{Success: true, Duplicates: duplicates, Message: msg}
}

// PreviewImport classifies the payload against the current store without
// mutating anything.
func (e *Engine) PreviewImport(jsonText []byte) Preview {
	incoming, ok := parseAndValidate(jsonText)
	if !ok {
		return Preview{Duplicates: []string{}, Message: MsgInvalidFormat}
	}

	existing := e.svc.Snapshot()
	duplicates := []string{}
	fresh := 0
	for _, in := range incoming {
		if findByTitle(existing, in.Title) >= 0 {
			duplicates = append(duplicates, in.Title)
		} else {
			fresh++
		}
	}

	return Preview{
		Success:     true,
		TotalHabits: len(incoming),
		NewHabits:   fresh,
		Duplicates:  duplicates,
		Message:     fmt.Sprintf("Would import %d new habits. %d duplicates found.", fresh, len(duplicates)),
	}
}

// restore puts the pre-import list back after a failed persist so memory and
// storage stay consistent. A failure here is only logged; storage already
// holds the old list.
func (e *Engine) restore(existing []models.Habit) {
	if err := e.svc.ReplaceAll(existing); err != nil {
		logger.Error("Failed to restore habits after import error", "error", err)
	}
}

func findByTitle(habits []models.Habit, title string) int {
	for i := range habits {
		if strings.EqualFold(habits[i].Title, title) {
			return i
		}
	}
	return -1
}

// sanitize prepares an incoming habit for insertion: ids are always
// regenerated so imported data can never collide with existing entries, and
// reminders pass through the usual normalization.
func sanitize(in models.Habit) models.Habit {
	out := in.Clone()
	out.ID = uuid.New().String()
	if out.CheckIns == nil {
		out.CheckIns = map[string]string{}
	}
	out.Reminder = habit.NormalizeReminder(out.Reminder)
	return out
}

// parseAndValidate decodes the payload and checks the habit schema strictly:
// the top level must be an array and every element must carry the required
// fields with the right primitive types. Anything else rejects the whole
// payload.
func parseAndValidate(jsonText []byte) ([]models.Habit, bool) {
	var raw []map[string]any
	if err := json.Unmarshal(jsonText, &raw); err != nil {
		return nil, false
	}
	for _, entry := range raw {
		if !validEntry(entry) {
			return nil, false
		}
	}

	var habits []models.Habit
	if err := json.Unmarshal(jsonText, &habits); err != nil {
		return nil, false
	}
	return habits, true
}

func validEntry(entry map[string]any) bool {
	for _, field := range []string{"id", "title", "categoryId", "color", "createdAt"} {
		if _, ok := entry[field].(string); !ok {
			return false
		}
	}

	target, ok := entry["daysTarget"].(float64)
	if !ok || target <= 0 {
		return false
	}

	if _, ok := entry["checkIns"].(map[string]any); !ok {
		return false
	}

	if reminder, present := entry["reminder"]; present && reminder != nil {
		rm, ok := reminder.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := rm["time"].(string); !ok {
			return false
		}
		if _, ok := rm["days"].([]any); !ok {
			return false
		}
		if _, ok := rm["window"].(float64); !ok {
			return false
		}
	}

	return true
}
