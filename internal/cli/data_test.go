package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/habit"
	"habitbuddy/internal/importer"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
)

func newTestService(t *testing.T) *habit.Service {
	t.Helper()
	store := storage.NewMemoryStore()
	store.SetFresh(false)
	svc, err := habit.NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestExportedEnvelopeRoundTripsThroughImport(t *testing.T) {
	source := newTestService(t)
	seed := []models.Habit{
		{
			ID: "a", Title: "Read", CategoryID: "learning", Color: "#96CEB4",
			DaysTarget: 21, CreatedAt: "2025-06-01",
			CheckIns: map[string]string{
				"2025-06-15": habit.CheckinToken("a", "2025-06-15"),
				"2025-06-16": habit.CheckinToken("a", "2025-06-16"),
			},
			Reminder: &models.Reminder{Time: "08:00", Days: []int{1, 3, 5}, Window: 60},
		},
		{
			ID: "b", Title: "Stretch", CategoryID: "fitness", Color: "#FF6B6B",
			DaysTarget: 30, CreatedAt: "2025-06-10",
			CheckIns: map[string]string{},
		},
	}
	if err := source.ReplaceAll(seed); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	// Write the same envelope shape the export command produces.
	envelope := exportEnvelope{
		Habits:     source.Snapshot(),
		ExportDate: "2025-06-16T12:00:00Z",
		Version:    constants.ExportVersion,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	payload, err := readImportPayload(path)
	if err != nil {
		t.Fatalf("readImportPayload() error = %v", err)
	}

	dest := newTestService(t)
	res := importer.New(dest).Import(payload)
	if !res.Success {
		t.Fatalf("import failed: %s", res.Message)
	}

	imported := dest.Snapshot()
	if len(imported) != len(seed) {
		t.Fatalf("got %d habits after round trip, want %d", len(imported), len(seed))
	}
	byTitle := make(map[string]models.Habit, len(imported))
	for _, h := range imported {
		byTitle[h.Title] = h
	}

	read, ok := byTitle["Read"]
	if !ok {
		t.Fatal("habit \"Read\" lost in round trip")
	}
	if read.ID == "a" {
		t.Error("imported habit kept its original id; ids must be regenerated")
	}
	if len(read.CheckIns) != 2 || read.CheckIns["2025-06-15"] != habit.CheckinToken("a", "2025-06-15") {
		t.Errorf("check-in history not preserved: %v", read.CheckIns)
	}
	if read.Reminder == nil || read.Reminder.Time != "08:00" || len(read.Reminder.Days) != 3 {
		t.Errorf("reminder not preserved: %+v", read.Reminder)
	}

	stretch, ok := byTitle["Stretch"]
	if !ok {
		t.Fatal("habit \"Stretch\" lost in round trip")
	}
	if stretch.DaysTarget != 30 || stretch.CategoryID != "fitness" {
		t.Errorf("habit fields not preserved: %+v", stretch)
	}
}

func TestReadImportPayloadAcceptsBareArray(t *testing.T) {
	raw := []byte(`[{"id":"a","title":"Read","categoryId":"learning","color":"#fff","createdAt":"2025-06-01","daysTarget":21,"checkIns":{}}]`)
	path := filepath.Join(t.TempDir(), "bare.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	payload, err := readImportPayload(path)
	if err != nil {
		t.Fatalf("readImportPayload() error = %v", err)
	}
	var habits []models.Habit
	if err := json.Unmarshal(payload, &habits); err != nil || len(habits) != 1 {
		t.Fatalf("bare array payload unusable: %v, %d habits", err, len(habits))
	}
	if habits[0].Title != "Read" {
		t.Errorf("title = %q, want Read", habits[0].Title)
	}
}
