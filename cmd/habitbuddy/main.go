package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"habitbuddy/internal/cli"
	"habitbuddy/internal/config"
	"habitbuddy/internal/constants"
	"habitbuddy/internal/errors"
	"habitbuddy/internal/logger"
	"habitbuddy/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Store   string `help:"Storage file path (.json for the JSON store, anything else for SQLite)." type:"path"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Checkin cli.CheckinCmd `cmd:"" help:"Check in a habit for today."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show streaks, badges and trends."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Habit   struct {
		Add    cli.HabitAddCmd    `cmd:"" help:"Add a new habit."`
		List   cli.HabitListCmd   `cmd:"" help:"List all habits."`
		Remove cli.HabitRemoveCmd `cmd:"" help:"Remove a habit."`
	} `cmd:"" help:"Manage habits."`
	Reminder struct {
		Set   cli.ReminderSetCmd   `cmd:"" help:"Set or replace a habit's reminder."`
		Clear cli.ReminderClearCmd `cmd:"" help:"Remove a habit's reminder."`
		List  cli.ReminderListCmd  `cmd:"" help:"List all reminders."`
	} `cmd:"" help:"Manage reminders."`
	Remind struct {
		Run cli.RemindRunCmd `cmd:"" help:"Run the reminder scan loop." default:"1"`
	} `cmd:"" help:"Reminder daemon."`
	Data struct {
		Export  cli.DataExportCmd  `cmd:"" help:"Export all habits to a JSON file."`
		Import  cli.DataImportCmd  `cmd:"" help:"Import habits from a JSON file."`
		Preview cli.DataPreviewCmd `cmd:"" help:"Preview an import without applying it."`
		Sample  cli.DataSampleCmd  `cmd:"" help:"Replace all habits with sample data."`
		Clear   cli.DataClearCmd   `cmd:"" help:"Delete all habits."`
	} `cmd:"" help:"Import, export and reset habit data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with streaks, badges and time-windowed reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	storagePath := cfg.StoragePath
	if CLI.Store != "" {
		storagePath = CLI.Store
	}
	storagePath, err = config.ExpandHome(storagePath)
	if err != nil {
		errors.Fatal(err)
	}

	// The extension picks the backend: .json files use the document store,
	// everything else goes through SQLite.
	var store storage.Provider
	if strings.HasSuffix(storagePath, ".json") {
		store = storage.NewJSONStore(storagePath)
	} else {
		store = storage.NewSQLiteStore(storagePath)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: &cfg,
		Debug:  CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
