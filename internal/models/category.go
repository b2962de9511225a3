package models

// Category groups habits for display and suggests an initial day target.
type Category struct {
	ID   string
	Name string
	// Days is the suggested initial day target for new habits in the category.
	Days int
}

var Categories = []Category{
	{ID: "health", Name: "Health", Days: 30},
	{ID: "fitness", Name: "Fitness", Days: 30},
	{ID: "learning", Name: "Learning", Days: 21},
	{ID: "productivity", Name: "Productivity", Days: 30},
	{ID: "mindfulness", Name: "Mindfulness", Days: 21},
}

// CategoryByID looks up a category, defaulting to the first entry so callers
// always get a usable value.
func CategoryByID(id string) Category {
	for _, c := range Categories {
		if c.ID == id {
			return c
		}
	}
	return Categories[0]
}
