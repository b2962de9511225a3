package habit

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

// samplePolicy decides whether a sample habit gets a check-in on a given day.
type samplePolicy func(day time.Time) bool

type sampleSpec struct {
	title      string
	categoryID string
	policy     samplePolicy
}

// sampleSpecs are the demo habits seeded on first run. Each uses a distinct
// random-inclusion policy so the generated history looks visually varied; the
// randomness is deliberately unseeded, the data just needs to be present.
func sampleSpecs() []sampleSpec {
	return []sampleSpec{
		{"Morning meditation", "mindfulness", func(day time.Time) bool {
			return rand.Float64() < 0.8
		}},
		{"Read 20 pages", "learning", func(day time.Time) bool {
			wd := day.Weekday()
			return wd >= time.Monday && wd <= time.Friday && rand.Float64() < 0.7
		}},
		{"Workout", "fitness", func(day time.Time) bool {
			return day.Day()%2 == 1 && rand.Float64() < 0.6
		}},
		{"Call family", "health", func(day time.Time) bool {
			wd := day.Weekday()
			return (wd == time.Saturday || wd == time.Sunday) && rand.Float64() < 0.5
		}},
		{"Journal", "productivity", func(day time.Time) bool {
			return rand.Float64() < 0.4
		}},
	}
}

// LoadSampleHabits replaces the habit list with the demo set, generating
// check-in history for the current calendar month up to today. Future days
// never receive check-ins.
func (s *Service) LoadSampleHabits() error {
	now := s.now()
	year, month, today := now.Date()
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())

	samples := make([]models.Habit, 0, len(sampleSpecs()))
	for i, spec := range sampleSpecs() {
		h := models.Habit{
			ID:         uuid.New().String(),
			Title:      spec.title,
			DaysTarget: constants.ProvisionalDaysTarget,
			CategoryID: spec.categoryID,
			Color:      constants.Palette[i%len(constants.Palette)],
			CreatedAt:  utils.DateKey(firstOfMonth),
			CheckIns:   map[string]string{},
		}

		for day := 1; day <= today; day++ {
			d := firstOfMonth.AddDate(0, 0, day-1)
			if spec.policy(d) {
				key := utils.DateKey(d)
				h.CheckIns[key] = CheckinToken(h.ID, key)
			}
		}

		completed := h.CompletedDays()
		h.Badge = models.BadgeForDays(completed).Level
		h.DaysTarget = models.TargetDays(completed)
		samples = append(samples, h)
	}

	return s.ReplaceAll(samples)
}
