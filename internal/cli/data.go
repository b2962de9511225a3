package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"habitbuddy/internal/constants"
	"habitbuddy/internal/fsutil"
	"habitbuddy/internal/importer"
	"habitbuddy/internal/models"
)

// exportEnvelope wraps the habit list for export files. Import accepts both
// the envelope and a bare habit array.
type exportEnvelope struct {
	Habits     []models.Habit `json:"habits"`
	ExportDate string         `json:"exportDate"`
	Version    string         `json:"version"`
}

type DataExportCmd struct {
	Output string `short:"o" help:"Output file path." type:"path"`
}

func (c *DataExportCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	envelope := exportEnvelope{
		Habits:     svc.Snapshot(),
		ExportDate: svc.Now().Format("2006-01-02T15:04:05Z07:00"),
		Version:    constants.ExportVersion,
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	path := c.Output
	if path == "" {
		path = constants.ExportFilePrefix + svc.TodayKey() + ".json"
	}
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	fmt.Printf("Exported %d habits to %s\n", len(envelope.Habits), path)
	return nil
}

type DataImportCmd struct {
	File       string `arg:"" help:"Import file (JSON)." type:"existingfile"`
	Duplicates string `help:"Duplicate handling (skip|replace|keep-both)." enum:"skip,replace,keep-both" default:"skip"`
}

func (c *DataImportCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	payload, err := readImportPayload(c.File)
	if err != nil {
		return err
	}

	res := importer.New(svc).ImportWithOptions(payload, importer.DuplicateAction(c.Duplicates))
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	fmt.Println(res.Message)
	if len(res.Duplicates) > 0 {
		fmt.Printf("Duplicate titles: %s\n", strings.Join(res.Duplicates, ", "))
	}
	return nil
}

type DataPreviewCmd struct {
	File string `arg:"" help:"Import file (JSON)." type:"existingfile"`
}

func (c *DataPreviewCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	payload, err := readImportPayload(c.File)
	if err != nil {
		return err
	}

	preview := importer.New(svc).PreviewImport(payload)
	if !preview.Success {
		return fmt.Errorf("%s", preview.Message)
	}

	fmt.Println(preview.Message)
	fmt.Printf("Total habits in file: %d\n", preview.TotalHabits)
	if len(preview.Duplicates) > 0 {
		fmt.Printf("Duplicate titles: %s\n", strings.Join(preview.Duplicates, ", "))
	}
	return nil
}

type DataSampleCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DataSampleCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm("Replace all habits with sample data?")
		if err != nil || !ok {
			return err
		}
	}

	if err := svc.LoadSampleHabits(); err != nil {
		return err
	}
	fmt.Printf("Loaded %d sample habits.\n", len(svc.Snapshot()))
	return nil
}

type DataClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DataClearCmd) Run(ctx *Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirm("Delete ALL habits and their check-in history?")
		if err != nil || !ok {
			return err
		}
	}

	if err := svc.ClearAll(); err != nil {
		return err
	}
	fmt.Println("All habits cleared.")
	return nil
}

// readImportPayload loads the file and unwraps an export envelope when
// present, so exported files round-trip directly into import.
func readImportPayload(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var env struct {
		Habits json.RawMessage `json:"habits"`
	}
	if err := json.Unmarshal(data, &env); err == nil && len(env.Habits) > 0 {
		return env.Habits, nil
	}
	return data, nil
}

func confirm(title string) (bool, error) {
	ok := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
