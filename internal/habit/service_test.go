package habit

import (
	"testing"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
)

func TestAddPrependsAndCyclesColors(t *testing.T) {
	svc, store := newTestService(t, monday)

	first, err := svc.Add("First", "health", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	second, err := svc.Add("Second", "health", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	snapshot := svc.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("got %d habits, want 2", len(snapshot))
	}
	if snapshot[0].ID != second.ID || snapshot[1].ID != first.ID {
		t.Error("new habits should be prepended to the list")
	}

	if first.Color != constants.Palette[0] || second.Color != constants.Palette[1] {
		t.Errorf("colors = %q, %q; want palette order %q, %q",
			first.Color, second.Color, constants.Palette[0], constants.Palette[1])
	}
	if want := models.CategoryByID("health").Days; first.DaysTarget != want {
		t.Errorf("daysTarget = %d, want category suggestion %d", first.DaysTarget, want)
	}
	if first.CreatedAt != "2025-06-16" {
		t.Errorf("createdAt = %q, want 2025-06-16", first.CreatedAt)
	}

	// Mutations are persisted synchronously.
	persisted, err := store.GetHabits()
	if err != nil || len(persisted) != 2 {
		t.Errorf("persisted list = %d habits, %v; want 2, nil", len(persisted), err)
	}
}

func TestAddUsesCategorySuggestedTarget(t *testing.T) {
	svc, _ := newTestService(t, monday)

	h, err := svc.Add("Study", "learning", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if want := models.CategoryByID("learning").Days; h.DaysTarget != want {
		t.Errorf("daysTarget = %d, want %d from the learning category", h.DaysTarget, want)
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	svc, _ := newTestService(t, monday)
	if _, err := svc.Add("   ", "health", nil); err == nil {
		t.Error("expected error for blank title")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t, monday)
	h, err := svc.Add("Stretch", "fitness", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.Remove(h.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := svc.Remove(h.ID); err != nil {
		t.Errorf("removing an absent id should be a no-op, got %v", err)
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("expected empty list after removal")
	}
}

func TestUpdateReminderReplacesOnlyReminder(t *testing.T) {
	svc, _ := newTestService(t, monday)
	h, err := svc.Add("Read", "learning", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reminder := &models.Reminder{Time: "21:00", Days: []int{3, 1, 1, 9, -1}, Window: 2000}
	if err := svc.UpdateReminder(h.ID, reminder); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}

	got, _ := svc.Get(h.ID)
	if got.Reminder == nil {
		t.Fatal("reminder not set")
	}
	// Days deduplicated, out-of-range dropped, sorted; window clamped.
	if len(got.Reminder.Days) != 2 || got.Reminder.Days[0] != 1 || got.Reminder.Days[1] != 3 {
		t.Errorf("days = %v, want [1 3]", got.Reminder.Days)
	}
	if got.Reminder.Window != constants.MaxReminderWindowMin {
		t.Errorf("window = %d, want clamped to %d", got.Reminder.Window, constants.MaxReminderWindowMin)
	}
	if got.Title != "Read" {
		t.Errorf("title changed unexpectedly to %q", got.Title)
	}

	if err := svc.UpdateReminder(h.ID, nil); err != nil {
		t.Fatalf("UpdateReminder(nil) error = %v", err)
	}
	got, _ = svc.Get(h.ID)
	if got.Reminder != nil {
		t.Error("expected reminder removed")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	svc, _ := newTestService(t, monday)
	if _, err := svc.Add("Read", "learning", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	snapshot := svc.Snapshot()
	snapshot[0].Title = "Mutated"
	snapshot[0].CheckIns["2025-01-01"] = "tok"

	fresh := svc.Snapshot()
	if fresh[0].Title == "Mutated" || len(fresh[0].CheckIns) != 0 {
		t.Error("snapshot mutation leaked into store state")
	}
}

func TestDerivedViews(t *testing.T) {
	svc, _ := newTestService(t, monday)

	if svc.AverageCompletion() != 0 {
		t.Errorf("AverageCompletion() with no habits = %d, want 0", svc.AverageCompletion())
	}

	habits := []models.Habit{
		{
			ID: "a", Title: "A", DaysTarget: 10, CreatedAt: "2025-06-01",
			CheckIns: map[string]string{
				"2025-06-16": "t", "2025-06-15": "t", "2025-06-14": "t",
			},
		},
		{
			ID: "b", Title: "B", DaysTarget: 20, CreatedAt: "2025-06-01",
			CheckIns: map[string]string{
				"2025-06-10": "t", "2025-06-09": "t", "2025-06-08": "t",
				"2025-06-07": "t", "2025-06-06": "t",
			},
		},
	}
	if err := svc.ReplaceAll(habits); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	if got := svc.TotalCompleted(); got != 8 {
		t.Errorf("TotalCompleted() = %d, want 8", got)
	}
	// a: 3/10 = 30%, b: 5/20 = 25%; mean 27.5 rounds to 28.
	if got := svc.AverageCompletion(); got != 28 {
		t.Errorf("AverageCompletion() = %d, want 28", got)
	}
	if got := svc.BestCurrentStreak(); got != 3 {
		t.Errorf("BestCurrentStreak() = %d, want 3", got)
	}
	if got := svc.BestLongestStreak(); got != 5 {
		t.Errorf("BestLongestStreak() = %d, want 5", got)
	}
}

func TestWeeklyTrendCountsAcrossHabits(t *testing.T) {
	svc, _ := newTestService(t, monday)
	habits := []models.Habit{
		{ID: "a", Title: "A", CreatedAt: "2025-06-01", CheckIns: map[string]string{
			"2025-06-16": "t", "2025-06-15": "t",
		}},
		{ID: "b", Title: "B", CreatedAt: "2025-06-01", CheckIns: map[string]string{
			"2025-06-16": "t",
		}},
	}
	if err := svc.ReplaceAll(habits); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	trend := svc.WeeklyTrend()
	if len(trend.Labels) != 7 || len(trend.Data) != 7 {
		t.Fatalf("weekly trend has %d labels / %d points, want 7/7", len(trend.Labels), len(trend.Data))
	}
	if trend.Labels[6] != "Mon" {
		t.Errorf("last label = %q, want Mon (today)", trend.Labels[6])
	}
	if trend.Data[6] != 2 {
		t.Errorf("today's count = %d, want 2", trend.Data[6])
	}
	if trend.Data[5] != 1 {
		t.Errorf("yesterday's count = %d, want 1", trend.Data[5])
	}
	if trend.Data[0] != 0 {
		t.Errorf("six days ago count = %d, want 0", trend.Data[0])
	}
}

func TestMonthlyAndYearlyTrendShape(t *testing.T) {
	svc, _ := newTestService(t, monday)
	habits := []models.Habit{
		{ID: "a", Title: "A", CreatedAt: "2025-01-01", CheckIns: map[string]string{
			"2025-06-16": "t", "2025-06-01": "t", "2025-02-10": "t",
		}},
	}
	if err := svc.ReplaceAll(habits); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	monthly := svc.MonthlyTrend()
	if len(monthly.Labels) != 30 { // June
		t.Errorf("monthly trend has %d points, want 30", len(monthly.Labels))
	}
	if monthly.Data[0] != 1 || monthly.Data[15] != 1 {
		t.Errorf("monthly counts wrong: day1=%d day16=%d, want 1 and 1", monthly.Data[0], monthly.Data[15])
	}

	yearly := svc.YearlyTrend()
	if len(yearly.Labels) != 12 {
		t.Fatalf("yearly trend has %d points, want 12", len(yearly.Labels))
	}
	if yearly.Data[5] != 2 { // June
		t.Errorf("June count = %d, want 2", yearly.Data[5])
	}
	if yearly.Data[1] != 1 { // February
		t.Errorf("February count = %d, want 1", yearly.Data[1])
	}
}

func TestFreshStoreSeedsSamples(t *testing.T) {
	store := storage.NewMemoryStore() // fresh by default
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	habits := svc.Snapshot()
	if len(habits) != 5 {
		t.Fatalf("got %d sample habits, want 5", len(habits))
	}

	today := svc.TodayKey()
	for _, h := range habits {
		if h.Title == "" || h.Color == "" || h.ID == "" {
			t.Errorf("sample habit incomplete: %+v", h)
		}
		for key := range h.CheckIns {
			if key > today {
				t.Errorf("sample habit %q has future check-in %q", h.Title, key)
			}
		}
	}
}

func TestClearedStoreStaysEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	store.SetFresh(false)
	svc, err := NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if len(svc.Snapshot()) != 0 {
		t.Error("non-fresh empty store must not be reseeded")
	}
}
