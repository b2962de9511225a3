// Package streak computes streak statistics over a habit's check-in date set.
package streak

import (
	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

// Calc returns the current and longest streak for a set of check-in date keys.
// today anchors the current streak: a habit not checked in today always has a
// current streak of 0, even if yesterday was checked in.
//
// Calc is pure; it is called on every stats render and must stay cheap.
func Calc(checkIns map[string]string, today string) models.HabitStats {
	if len(checkIns) == 0 {
		return models.HabitStats{}
	}

	longest := 0
	for day := range checkIns {
		// Only walk runs from their first day.
		if _, ok := checkIns[utils.PrevDateKey(day)]; ok {
			continue
		}
		run := 1
		next := utils.NextDateKey(day)
		for {
			if _, ok := checkIns[next]; !ok {
				break
			}
			run++
			next = utils.NextDateKey(next)
		}
		if run > longest {
			longest = run
		}
	}

	current := 0
	for day := today; ; day = utils.PrevDateKey(day) {
		if _, ok := checkIns[day]; !ok {
			break
		}
		current++
	}

	return models.HabitStats{Current: current, Longest: longest}
}
