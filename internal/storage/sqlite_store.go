package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"habitbuddy/internal/models"
)

// SQLiteStore persists habits and markers in a local SQLite database.
type SQLiteStore struct {
	path  string
	db    *sql.DB
	fresh bool
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	days_target INTEGER NOT NULL,
	category_id TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	badge       TEXT,
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS checkins (
	habit_id TEXT NOT NULL,
	day      TEXT NOT NULL,
	token    TEXT NOT NULL,
	PRIMARY KEY (habit_id, day)
);
CREATE TABLE IF NOT EXISTS reminders (
	habit_id   TEXT PRIMARY KEY,
	time       TEXT NOT NULL,
	days       TEXT NOT NULL,
	window_min INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS markers (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

func (s *SQLiteStore) Load() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.fresh = true
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Fresh() bool {
	return s.fresh
}

func (s *SQLiteStore) GetHabits() ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, title, days_target, category_id, color, created_at, badge
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var badge sql.NullString
		if err := rows.Scan(&h.ID, &h.Title, &h.DaysTarget, &h.CategoryID, &h.Color, &h.CreatedAt, &badge); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		if badge.Valid {
			h.Badge = models.BadgeLevel(badge.String)
		}
		h.CheckIns = make(map[string]string)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}

	byID := make(map[string]*models.Habit, len(habits))
	for i := range habits {
		byID[habits[i].ID] = &habits[i]
	}

	checkins, err := s.db.Query(`SELECT habit_id, day, token FROM checkins`)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkins: %w", err)
	}
	defer checkins.Close()
	for checkins.Next() {
		var habitID, day, token string
		if err := checkins.Scan(&habitID, &day, &token); err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		if h, ok := byID[habitID]; ok {
			h.CheckIns[day] = token
		}
	}
	if err := checkins.Err(); err != nil {
		return nil, fmt.Errorf("failed to read checkins: %w", err)
	}

	reminders, err := s.db.Query(`SELECT habit_id, time, days, window_min FROM reminders`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer reminders.Close()
	for reminders.Next() {
		var habitID, timeStr, daysCSV string
		var window int
		if err := reminders.Scan(&habitID, &timeStr, &daysCSV, &window); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		if h, ok := byID[habitID]; ok {
			h.Reminder = &models.Reminder{
				Time:   timeStr,
				Days:   parseDaysCSV(daysCSV),
				Window: window,
			}
		}
	}
	if err := reminders.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}

	return habits, nil
}

// SaveHabits replaces the whole habit set in one transaction. The store is
// small and single-writer, so a full rewrite keeps list order and avoids
// diffing.
func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "checkins", "reminders"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, h := range habits {
		var badge interface{}
		if h.Badge != "" {
			badge = string(h.Badge)
		}
		if _, err := tx.Exec(`
			INSERT INTO habits (id, title, days_target, category_id, color, created_at, badge, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Title, h.DaysTarget, h.CategoryID, h.Color, h.CreatedAt, badge, pos); err != nil {
			return fmt.Errorf("failed to insert habit: %w", err)
		}

		for day, token := range h.CheckIns {
			if _, err := tx.Exec(`INSERT INTO checkins (habit_id, day, token) VALUES (?, ?, ?)`,
				h.ID, day, token); err != nil {
				return fmt.Errorf("failed to insert checkin: %w", err)
			}
		}

		if h.Reminder != nil {
			if _, err := tx.Exec(`INSERT INTO reminders (habit_id, time, days, window_min) VALUES (?, ?, ?, ?)`,
				h.ID, h.Reminder.Time, formatDaysCSV(h.Reminder.Days), h.Reminder.Window); err != nil {
				return fmt.Errorf("failed to insert reminder: %w", err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) getMarker(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM markers WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read marker: %w", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) setMarker(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(`
		INSERT INTO markers (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write marker: %w", err)
	}
	return nil
}

func (s *SQLiteStore) NotifiedToday(habitID, dateKey string) (bool, error) {
	_, ok, err := s.getMarker(notifiedKey(habitID, dateKey))
	return ok, err
}

func (s *SQLiteStore) SetNotifiedToday(habitID, dateKey string) error {
	return s.setMarker(notifiedKey(habitID, dateKey), markerSet)
}

func (s *SQLiteStore) SnoozedUntil(habitID string) (time.Time, bool, error) {
	raw, ok, err := s.getMarker(snoozeKey(habitID))
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	until, perr := time.Parse(time.RFC3339, raw)
	if perr != nil {
		return time.Time{}, false, nil
	}
	return until, true, nil
}

func (s *SQLiteStore) SetSnoozedUntil(habitID string, until time.Time) error {
	return s.setMarker(snoozeKey(habitID), until.Format(time.RFC3339))
}

func (s *SQLiteStore) ClearSnooze(habitID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, err := s.db.Exec(`DELETE FROM markers WHERE key = ?`, snoozeKey(habitID)); err != nil {
		return fmt.Errorf("failed to delete marker: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LastCheckinAt() (time.Time, bool, error) {
	raw, ok, err := s.getMarker(lastCheckinKey)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	ts, perr := time.Parse(time.RFC3339, raw)
	if perr != nil {
		return time.Time{}, false, nil
	}
	return ts, true, nil
}

func (s *SQLiteStore) SetLastCheckinAt(t time.Time) error {
	return s.setMarker(lastCheckinKey, t.Format(time.RFC3339))
}

func (s *SQLiteStore) GetStoragePath() string {
	return s.path
}

func formatDaysCSV(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func parseDaysCSV(csv string) []int {
	if csv == "" {
		return []int{}
	}
	parts := strings.Split(csv, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		if d, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			days = append(days, d)
		}
	}
	return days
}
