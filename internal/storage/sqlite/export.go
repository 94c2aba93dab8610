// ABOUTME: Export functionality for tracked data
// ABOUTME: Supports JSON and YAML export of a day range across all tables
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/minakami/minakami/internal/models"
)

// ExportData is the complete exportable structure for a day range.
type ExportData struct {
	Version    string                    `yaml:"version" json:"version"`
	ExportedAt string                    `yaml:"exported_at" json:"exported_at"`
	Tool       string                    `yaml:"tool" json:"tool"`
	StartDate  string                    `yaml:"start_date" json:"start_date"`
	EndDate    string                    `yaml:"end_date" json:"end_date"`
	Activities []models.Activity         `yaml:"activities,omitempty" json:"activities,omitempty"`
	Locations  []models.Location         `yaml:"locations,omitempty" json:"locations,omitempty"`
	CallLogs   []models.CallLog          `yaml:"call_logs,omitempty" json:"call_logs,omitempty"`
	AppUsage   []models.AppUsage         `yaml:"app_usage,omitempty" json:"app_usage,omitempty"`
	Summaries  []models.DailySummary     `yaml:"daily_summaries,omitempty" json:"daily_summaries,omitempty"`
	Narratives []models.NarrativeSummary `yaml:"narratives,omitempty" json:"narratives,omitempty"`
	Notes      []models.UserDailyNote    `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Export collects every table's rows for the inclusive day range
// [startDate, endDate].
func (t *Tracker) Export(startDate, endDate string) (*ExportData, error) {
	if err := t.guard(); err != nil {
		return nil, err
	}

	startMillis, _, err := dayBounds(startDate)
	if err != nil {
		return nil, err
	}
	_, endMillis, err := dayBounds(endDate)
	if err != nil {
		return nil, err
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "minakami",
		StartDate:  startDate,
		EndDate:    endDate,
	}

	if data.Activities, err = t.activities.GetForRange(startMillis, endMillis); err != nil {
		return nil, fmt.Errorf("failed to export activities: %w", err)
	}
	if data.Locations, err = t.locations.GetForRange(startMillis, endMillis); err != nil {
		return nil, fmt.Errorf("failed to export locations: %w", err)
	}
	if data.CallLogs, err = t.callLogs.GetForRange(startMillis, endMillis); err != nil {
		return nil, fmt.Errorf("failed to export call logs: %w", err)
	}
	if data.AppUsage, err = t.appUsage.GetForRange(startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to export app usage: %w", err)
	}
	if data.Summaries, err = t.exportDailySummaries(startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to export daily summaries: %w", err)
	}
	if data.Narratives, err = t.summaries.GetNarrativeRange(startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to export narratives: %w", err)
	}
	if data.Notes, err = t.exportNotes(startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to export notes: %w", err)
	}

	return data, nil
}

// WriteJSON exports the range to path as indented JSON.
func (t *Tracker) WriteJSON(path, startDate, endDate string) error {
	data, err := t.Export(startDate, endDate)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return writeExportFile(path, b)
}

// WriteYAML exports the range to path as YAML.
func (t *Tracker) WriteYAML(path, startDate, endDate string) error {
	data, err := t.Export(startDate, endDate)
	if err != nil {
		return err
	}

	b, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return writeExportFile(path, b)
}

func writeExportFile(path string, b []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (t *Tracker) exportDailySummaries(startDate, endDate string) ([]models.DailySummary, error) {
	rows, err := t.db.Query(`
		SELECT date FROM daily_summaries
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var sums []models.DailySummary
	for _, d := range dates {
		sum, err := t.summaries.GetDaily(d)
		if err != nil {
			return nil, err
		}
		if sum != nil {
			sums = append(sums, *sum)
		}
	}
	return sums, nil
}

func (t *Tracker) exportNotes(startDate, endDate string) ([]models.UserDailyNote, error) {
	rows, err := t.db.Query(`
		SELECT id, date, content, timestamp, COALESCE(created_at, 0), COALESCE(updated_at, 0)
		FROM user_daily_notes
		WHERE date BETWEEN ? AND ?
		ORDER BY date ASC, timestamp ASC
	`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []models.UserDailyNote
	for rows.Next() {
		var n models.UserDailyNote
		if err := rows.Scan(&n.ID, &n.Date, &n.Content, &n.Timestamp, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// rowCount is a small helper for sanity checks and tests.
func (t *Tracker) rowCount(table string) (int64, error) {
	var n int64
	row := t.db.QueryRow("SELECT COUNT(*) FROM " + table)
	if row == nil {
		return 0, ErrNotOpen
	}
	if err := row.Scan(&n); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
