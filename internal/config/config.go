// Package config handles configuration loading and defaults for habitbuddy.
// Configuration is loaded from ~/.config/habitbuddy/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"habitbuddy/internal/constants"
)

// Config represents the application configuration.
type Config struct {
	// StoragePath overrides the default storage location. A .json extension
	// selects the JSON store, anything else the SQLite store.
	StoragePath string `yaml:"storage_path,omitempty"`

	// Notifications configures desktop notifications for reminders
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Reminders configures the reminder scheduler
	Reminders ReminderConfig `yaml:"reminders,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables desktop notifications; when disabled (or the
	// platform has no notifier) reminders fall back to an in-terminal alert
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound enables audible cues alongside notifications
	Sound bool `yaml:"sound,omitempty"`
}

// ReminderConfig defines scheduler settings.
type ReminderConfig struct {
	// TickSeconds is the scan interval for due reminders
	TickSeconds int `yaml:"tick_seconds,omitempty"`

	// SnoozeMinutes is how long a snoozed reminder stays quiet
	SnoozeMinutes int `yaml:"snooze_minutes,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		StoragePath: constants.DefaultStoragePath,
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Reminders: ReminderConfig{
			TickSeconds:   int(constants.ReminderTickInterval / time.Second),
			SnoozeMinutes: int(constants.SnoozeDuration / time.Minute),
		},
	}
}

// Load reads the config file at path, filling in defaults for anything the
// file omits. A missing file yields the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.StoragePath == "" {
		cfg.StoragePath = constants.DefaultStoragePath
	}
	if cfg.Reminders.TickSeconds <= 0 {
		cfg.Reminders.TickSeconds = int(constants.ReminderTickInterval / time.Second)
	}
	if cfg.Reminders.SnoozeMinutes <= 0 {
		cfg.Reminders.SnoozeMinutes = int(constants.SnoozeDuration / time.Minute)
	}

	return cfg, nil
}

// TickInterval returns the scheduler scan interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Reminders.TickSeconds) * time.Second
}

// SnoozeDuration returns the snooze quiet period as a duration.
func (c Config) SnoozeDuration() time.Duration {
	return time.Duration(c.Reminders.SnoozeMinutes) * time.Minute
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") && path != "~" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
