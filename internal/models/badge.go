package models

// BadgeLevel is a discrete achievement tier derived from completed-day count.
type BadgeLevel string

const (
	BadgeNovice       BadgeLevel = "novice"
	BadgeBeginner     BadgeLevel = "beginner"
	BadgeIntermediate BadgeLevel = "intermediate"
	BadgeAdvanced     BadgeLevel = "advanced"
	BadgeExpert       BadgeLevel = "expert"
	BadgeMaster       BadgeLevel = "master"
)

// BadgeColors holds display colors for a badge tier.
type BadgeColors struct {
	Background string
	Foreground string
}

// BadgeConfig describes one badge tier.
type BadgeConfig struct {
	Level        BadgeLevel
	Name         string
	Description  string
	Icon         string
	DaysRequired int
	Colors       BadgeColors
}

// BadgeLevels is the static tier table, ordered strictly increasing by
// DaysRequired and starting at 0.
var BadgeLevels = []BadgeConfig{
	{
		Level:        BadgeNovice,
		Name:         "Novice",
		Description:  "Starting your journey!",
		Icon:         "✨",
		DaysRequired: 0,
		Colors:       BadgeColors{Background: "#f3f4f6", Foreground: "#4b5563"},
	},
	{
		Level:        BadgeBeginner,
		Name:         "Beginner",
		Description:  "7+ days completed!",
		Icon:         "🌱",
		DaysRequired: 7,
		Colors:       BadgeColors{Background: "#dcfce7", Foreground: "#16a34a"},
	},
	{
		Level:        BadgeIntermediate,
		Name:         "Intermediate",
		Description:  "21+ days completed!",
		Icon:         "🎯",
		DaysRequired: 21,
		Colors:       BadgeColors{Background: "#dbeafe", Foreground: "#2563eb"},
	},
	{
		Level:        BadgeAdvanced,
		Name:         "Advanced",
		Description:  "50+ days completed!",
		Icon:         "⭐",
		DaysRequired: 50,
		Colors:       BadgeColors{Background: "#f3e8ff", Foreground: "#9333ea"},
	},
	{
		Level:        BadgeExpert,
		Name:         "Expert",
		Description:  "75+ days completed!",
		Icon:         "🏆",
		DaysRequired: 75,
		Colors:       BadgeColors{Background: "#ffedd5", Foreground: "#ea580c"},
	},
	{
		Level:        BadgeMaster,
		Name:         "Master",
		Description:  "100+ days completed!",
		Icon:         "👑",
		DaysRequired: 100,
		Colors:       BadgeColors{Background: "#fef9c3", Foreground: "#ca8a04"},
	},
}

// BadgeByLevel returns the configuration for a specific tier.
func BadgeByLevel(level BadgeLevel) (BadgeConfig, bool) {
	for _, b := range BadgeLevels {
		if b.Level == level {
			return b, true
		}
	}
	return BadgeConfig{}, false
}

// BadgeForDays returns the highest tier whose DaysRequired does not exceed
// the completed-day count (highest satisfied floor).
func BadgeForDays(completedDays int) BadgeConfig {
	for i := len(BadgeLevels) - 1; i >= 0; i-- {
		if completedDays >= BadgeLevels[i].DaysRequired {
			return BadgeLevels[i]
		}
	}
	return BadgeLevels[0]
}

// NextBadge returns the tier after the one currently satisfied, or false when
// the count is already at the top tier.
func NextBadge(completedDays int) (BadgeConfig, bool) {
	current := BadgeForDays(completedDays)
	for i, b := range BadgeLevels {
		if b.Level == current.Level && i < len(BadgeLevels)-1 {
			return BadgeLevels[i+1], true
		}
	}
	return BadgeConfig{}, false
}

// ProgressToNextLevel returns percentage progress from the current tier floor
// toward the next tier, capped at 100.
func ProgressToNextLevel(completedDays int) int {
	next, ok := NextBadge(completedDays)
	if !ok {
		return 100
	}
	current := BadgeForDays(completedDays)
	span := next.DaysRequired - current.DaysRequired
	progress := completedDays - current.DaysRequired
	pct := progress * 100 / span
	if pct > 100 {
		pct = 100
	}
	return pct
}

// TargetDays returns the day-count target shown for a habit with the given
// completed-day count: the next tier's requirement, or the top tier's floor
// once reached.
func TargetDays(completedDays int) int {
	if next, ok := NextBadge(completedDays); ok {
		return next.DaysRequired
	}
	return BadgeLevels[len(BadgeLevels)-1].DaysRequired
}
