package importer

import (
	"encoding/json"
	"strings"
	"testing"

	"habitbuddy/internal/habit"
	"habitbuddy/internal/models"
	"habitbuddy/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *habit.Service) {
	t.Helper()
	store := storage.NewMemoryStore()
	store.SetFresh(false)
	svc, err := habit.NewService(store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return New(svc), svc
}

func payload(t *testing.T, habits ...models.Habit) []byte {
	t.Helper()
	data, err := json.Marshal(habits)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func incomingHabit(id, title string) models.Habit {
	return models.Habit{
		ID:         id,
		Title:      title,
		DaysTarget: 30,
		CategoryID: "health",
		Color:      "#ff6b6b",
		CreatedAt:  "2025-06-01",
		CheckIns:   map[string]string{"2025-06-02": "tok"},
	}
}

func TestImportIntoEmptyStore(t *testing.T) {
	engine, svc := newTestEngine(t)

	res := engine.Import(payload(t, incomingHabit("x1", "Run"), incomingHabit("x2", "Read")))
	if !res.Success {
		t.Fatalf("import failed: %q", res.Message)
	}
	if res.Message != "Successfully imported 2 habits." {
		t.Errorf("message = %q", res.Message)
	}
	if res.Duplicates != nil {
		t.Errorf("duplicates = %v, want none", res.Duplicates)
	}

	habits := svc.Snapshot()
	if len(habits) != 2 {
		t.Fatalf("got %d habits, want 2", len(habits))
	}
	for _, h := range habits {
		if h.ID == "x1" || h.ID == "x2" {
			t.Errorf("imported habit kept its original id %q", h.ID)
		}
		if len(h.CheckIns) != 1 {
			t.Errorf("check-ins lost for %q", h.Title)
		}
	}
}

func TestImportSkipsDuplicatesCaseInsensitively(t *testing.T) {
	engine, svc := newTestEngine(t)
	if _, err := svc.Add("Read", "learning", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res := engine.Import(payload(t, incomingHabit("x1", "read"), incomingHabit("x2", "Run")))
	if !res.Success {
		t.Fatalf("import failed: %q", res.Message)
	}
	if res.Message != "Imported 1 new habits. 1 duplicates found and skipped." {
		t.Errorf("message = %q", res.Message)
	}
	if len(res.Duplicates) != 1 || res.Duplicates[0] != "read" {
		t.Errorf("duplicates = %v, want [read]", res.Duplicates)
	}

	habits := svc.Snapshot()
	if len(habits) != 2 {
		t.Fatalf("got %d habits, want 2 (existing Read + imported Run)", len(habits))
	}
}

func TestImportWithReplacePolicy(t *testing.T) {
	engine, svc := newTestEngine(t)
	original, err := svc.Add("Read", "learning", nil)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res := engine.ImportWithOptions(payload(t, incomingHabit("x1", "read")), ActionReplace)
	if !res.Success {
		t.Fatalf("import failed: %q", res.Message)
	}
	if res.Message != "Imported 1 habits. Replaced 1 existing habits." {
		t.Errorf("message = %q", res.Message)
	}

	habits := svc.Snapshot()
	if len(habits) != 1 {
		t.Fatalf("got %d habits, want exactly one survivor", len(habits))
	}
	got := habits[0]
	if !strings.EqualFold(got.Title, "read") {
		t.Errorf("title = %q", got.Title)
	}
	if got.ID == original.ID || got.ID == "x1" {
		t.Errorf("replacement should carry a fresh id, got %q", got.ID)
	}
	// The incoming payload's check-in data wins.
	if _, ok := got.CheckIns["2025-06-02"]; !ok {
		t.Error("replacement lost the incoming check-in data")
	}
}

func TestImportWithKeepBothPolicy(t *testing.T) {
	engine, svc := newTestEngine(t)
	if _, err := svc.Add("Read", "learning", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res := engine.ImportWithOptions(payload(t, incomingHabit("x1", "Read")), ActionKeepBoth)
	if !res.Success {
		t.Fatalf("import failed: %q", res.Message)
	}
	if res.Message != "Imported 1 habits. Added 1 as copies." {
		t.Errorf("message = %q", res.Message)
	}

	habits := svc.Snapshot()
	if len(habits) != 2 {
		t.Fatalf("got %d habits, want original plus copy", len(habits))
	}

	titles := []string{habits[0].Title, habits[1].Title}
	foundCopy := false
	for _, title := range titles {
		if title == "Read (Copy)" {
			foundCopy = true
		}
	}
	if !foundCopy {
		t.Errorf("expected a \"Read (Copy)\" entry, got titles %v", titles)
	}
}

func TestImportWithSkipPolicyMessage(t *testing.T) {
	engine, svc := newTestEngine(t)
	if _, err := svc.Add("Read", "learning", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	res := engine.ImportWithOptions(payload(t, incomingHabit("x1", "read"), incomingHabit("x2", "Run")), ActionSkip)
	if !res.Success {
		t.Fatalf("import failed: %q", res.Message)
	}
	if res.Message != "Imported 1 new habits. Skipped 1 duplicates." {
		t.Errorf("message = %q", res.Message)
	}
	if len(svc.Snapshot()) != 2 {
		t.Errorf("got %d habits, want 2", len(svc.Snapshot()))
	}
}

func TestImportRejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{{{`},
		{"not an array", `{"habits": []}`},
		{"missing title", `[{"id":"a","daysTarget":30,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{}}]`},
		{"zero daysTarget", `[{"id":"a","title":"Run","daysTarget":0,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{}}]`},
		{"daysTarget wrong type", `[{"id":"a","title":"Run","daysTarget":"30","categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{}}]`},
		{"checkIns wrong type", `[{"id":"a","title":"Run","daysTarget":30,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":[]}]`},
		{"reminder missing window", `[{"id":"a","title":"Run","daysTarget":30,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{},"reminder":{"time":"08:00","days":[1]}}]`},
		{"reminder days not array", `[{"id":"a","title":"Run","daysTarget":30,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{},"reminder":{"time":"08:00","days":1,"window":60}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, svc := newTestEngine(t)
			if _, err := svc.Add("Existing", "health", nil); err != nil {
				t.Fatalf("Add() error = %v", err)
			}

			res := engine.Import([]byte(tt.json))
			if res.Success {
				t.Fatal("expected rejection")
			}
			if res.Message != MsgInvalidFormat {
				t.Errorf("message = %q, want %q", res.Message, MsgInvalidFormat)
			}
			if len(svc.Snapshot()) != 1 {
				t.Error("store mutated on a failed import")
			}
		})
	}
}

func TestImportAcceptsNullReminder(t *testing.T) {
	engine, _ := newTestEngine(t)
	raw := `[{"id":"a","title":"Run","daysTarget":30,"categoryId":"health","color":"#fff","createdAt":"2025-06-01","checkIns":{},"reminder":null}]`
	if res := engine.Import([]byte(raw)); !res.Success {
		t.Errorf("null reminder should validate, got %q", res.Message)
	}
}

func TestPreviewDoesNotMutate(t *testing.T) {
	engine, svc := newTestEngine(t)
	if _, err := svc.Add("Read", "learning", nil); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	preview := engine.PreviewImport(payload(t, incomingHabit("x1", "READ"), incomingHabit("x2", "Run")))
	if !preview.Success {
		t.Fatalf("preview failed: %q", preview.Message)
	}
	if preview.TotalHabits != 2 || preview.NewHabits != 1 {
		t.Errorf("counts = %d total / %d new, want 2/1", preview.TotalHabits, preview.NewHabits)
	}
	if len(preview.Duplicates) != 1 || preview.Duplicates[0] != "READ" {
		t.Errorf("duplicates = %v, want [READ]", preview.Duplicates)
	}
	if preview.Message != "Would import 1 new habits. 1 duplicates found." {
		t.Errorf("message = %q", preview.Message)
	}
	if len(svc.Snapshot()) != 1 {
		t.Error("preview must not touch the store")
	}
}

func TestPreviewRejectsInvalidPayload(t *testing.T) {
	engine, _ := newTestEngine(t)
	preview := engine.PreviewImport([]byte(`"nope"`))
	if preview.Success || preview.Message != MsgInvalidFormat {
		t.Errorf("got %+v, want invalid-format failure", preview)
	}
}
