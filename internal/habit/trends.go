package habit

import (
	"strconv"
	"time"

	"habitbuddy/internal/models"
	"habitbuddy/internal/utils"
)

// countCheckedOn returns how many habits have a check-in on the given day.
func (s *Service) countCheckedOn(dateKey string) int {
	count := 0
	for i := range s.habits {
		if s.habits[i].CheckedInOn(dateKey) {
			count++
		}
	}
	return count
}

// WeeklyTrend returns per-day check-in totals for the last 7 days, ending
// today. Labels are short weekday names.
func (s *Service) WeeklyTrend() models.TrendSeries {
	trend := models.TrendSeries{
		Labels: make([]string, 0, 7),
		Data:   make([]int, 0, 7),
	}

	now := s.now()
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		trend.Labels = append(trend.Labels, d.Weekday().String()[:3])
		trend.Data = append(trend.Data, s.countCheckedOn(utils.DateKey(d)))
	}

	return trend
}

// MonthlyTrend returns per-day check-in totals for every day of the current
// calendar month. Labels are day-of-month numbers.
func (s *Service) MonthlyTrend() models.TrendSeries {
	now := s.now()
	year, month, _ := now.Date()
	days := utils.DaysInMonth(year, month)

	trend := models.TrendSeries{
		Labels: make([]string, 0, days),
		Data:   make([]int, 0, days),
	}

	for day := 1; day <= days; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		trend.Labels = append(trend.Labels, strconv.Itoa(day))
		trend.Data = append(trend.Data, s.countCheckedOn(utils.DateKey(d)))
	}

	return trend
}

// YearlyTrend returns total check-in counts per month of the current year.
// Labels are short month names.
func (s *Service) YearlyTrend() models.TrendSeries {
	now := s.now()
	year := now.Year()

	counts := make([]int, 12)
	for i := range s.habits {
		for key := range s.habits[i].CheckIns {
			t, err := utils.ParseDateKey(key)
			if err != nil || t.Year() != year {
				continue
			}
			counts[int(t.Month())-1]++
		}
	}

	trend := models.TrendSeries{
		Labels: make([]string, 0, 12),
		Data:   counts,
	}
	for m := time.January; m <= time.December; m++ {
		trend.Labels = append(trend.Labels, m.String()[:3])
	}

	return trend
}
