// ABOUTME: Health export import for workout records
// ABOUTME: Reads a JSON export file and stores workouts as health-sourced activities
package collectors

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// HealthWorkout is one workout record in a health app JSON export.
type HealthWorkout struct {
	Type      string  `json:"type"`
	StartTime string  `json:"start_time"` // RFC3339
	EndTime   string  `json:"end_time"`   // RFC3339
	Calories  float64 `json:"calories"`
	Distance  float64 `json:"distance"` // meters
	Steps     int64   `json:"steps"`
}

type healthExport struct {
	Workouts []HealthWorkout `json:"workouts"`
}

// HealthImporter loads workout data from health app exports.
type HealthImporter struct {
	tracker *sqlite.Tracker
}

// NewHealthImporter creates a health export importer.
func NewHealthImporter(tracker *sqlite.Tracker) *HealthImporter {
	return &HealthImporter{tracker: tracker}
}

// ImportFile reads a JSON export and stores every workout as an
// activity with the health source. Returns the number imported.
func (hi *HealthImporter) ImportFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read health export: %w", err)
	}
	return hi.Import(b)
}

// Import stores workouts from raw export JSON.
func (hi *HealthImporter) Import(data []byte) (int, error) {
	var export healthExport
	if err := json.Unmarshal(data, &export); err != nil {
		return 0, fmt.Errorf("invalid health export: %w", err)
	}

	imported := 0
	for i, w := range export.Workouts {
		activity, err := convertWorkout(w)
		if err != nil {
			return imported, fmt.Errorf("workout %d: %w", i, err)
		}
		if _, err := hi.tracker.AddActivity(activity); err != nil {
			return imported, err
		}
		imported++
	}

	log.Printf("[Collector] Imported %d workouts from health export", imported)
	return imported, nil
}

func convertWorkout(w HealthWorkout) (*models.Activity, error) {
	start, err := time.Parse(time.RFC3339, w.StartTime)
	if err != nil {
		return nil, fmt.Errorf("bad start_time %q: %w", w.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, w.EndTime)
	if err != nil {
		return nil, fmt.Errorf("bad end_time %q: %w", w.EndTime, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_time %q before start_time %q", w.EndTime, w.StartTime)
	}

	a := &models.Activity{
		Type:      w.Type,
		StartTime: start.UnixMilli(),
		EndTime:   end.UnixMilli(),
		Duration:  int64(end.Sub(start).Seconds()),
		Source:    models.SourceHealth,
		Calories:  w.Calories,
		Distance:  w.Distance,
	}
	if w.Steps > 0 {
		a.Metadata = map[string]any{"steps": w.Steps}
	}
	return a, nil
}
