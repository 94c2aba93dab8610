// ABOUTME: Tests for data collectors and ingesters
// ABOUTME: Location merging, call validation, usage replacement, health import, demo seeding
package collectors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

func newTracker(t *testing.T) *sqlite.Tracker {
	t.Helper()
	tr, err := sqlite.NewTrackerInMemory()
	if err != nil {
		t.Fatalf("NewTrackerInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

func TestLocationIngesterMergesNearby(t *testing.T) {
	tr := newTracker(t)
	li := NewLocationIngester(tr, 100)

	ts := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local).UnixMilli()

	id1, merged, err := li.Ingest(models.LocationSample{Latitude: 35.6812, Longitude: 139.7671, Timestamp: ts})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if merged {
		t.Error("first sample reported as merged")
	}

	// ~30m north of the first sample, inside the 100m radius.
	id2, merged, err := li.Ingest(models.LocationSample{Latitude: 35.68147, Longitude: 139.7671, Timestamp: ts + 3600000})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if !merged || id2 != id1 {
		t.Errorf("nearby sample: merged=%v id=%d, want merged into %d", merged, id2, id1)
	}

	loc, err := tr.GetLocationByID(id1)
	if err != nil {
		t.Fatalf("GetLocationByID() error = %v", err)
	}
	if loc.VisitCount != 2 {
		t.Errorf("VisitCount = %d, want 2", loc.VisitCount)
	}
	if loc.LastVisited != ts+3600000 {
		t.Errorf("LastVisited = %d, want merge timestamp", loc.LastVisited)
	}

	// ~2km away, outside the radius.
	id3, merged, err := li.Ingest(models.LocationSample{Latitude: 35.7, Longitude: 139.7671, Timestamp: ts})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if merged || id3 == id1 {
		t.Errorf("far sample: merged=%v id=%d, want new location", merged, id3)
	}
}

func TestCallIngesterValidation(t *testing.T) {
	tr := newTracker(t)
	ci := NewCallIngester(tr)

	ts := time.Now().UnixMilli()

	if _, err := ci.Ingest([]models.CallLog{
		{PhoneNumber: "+1", CallType: "videocall", CallDate: ts},
	}); err == nil {
		t.Error("Ingest() with unknown call type should fail")
	}
	if _, err := ci.Ingest([]models.CallLog{
		{CallType: models.CallIncoming, CallDate: ts},
	}); err == nil {
		t.Error("Ingest() without phone number should fail")
	}

	n, err := ci.Ingest([]models.CallLog{
		{PhoneNumber: "+1", CallType: models.CallIncoming, CallDate: ts, Duration: 60},
		{PhoneNumber: "+2", CallType: models.CallMissed, CallDate: ts},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Ingest() = %d, want 2", n)
	}
}

func TestUsageIngesterReplacesDay(t *testing.T) {
	tr := newTracker(t)
	ui := NewUsageIngester(tr)

	ts := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local).UnixMilli()
	first := []models.AppUsage{
		{AppName: "Maps", PackageName: "maps", Duration: 60000, Timestamp: ts},
		{AppName: "Chrome", PackageName: "chrome", Duration: 120000, Timestamp: ts},
	}
	if _, err := ui.IngestDay("2024-03-15", first, models.UsageSourceStats); err != nil {
		t.Fatalf("IngestDay() error = %v", err)
	}

	// Re-collection with updated totals must replace, not accumulate.
	second := []models.AppUsage{
		{AppName: "Maps", PackageName: "maps", Duration: 90000, Timestamp: ts},
	}
	if _, err := ui.IngestDay("2024-03-15", second, models.UsageSourceStats); err != nil {
		t.Fatalf("IngestDay() error = %v", err)
	}

	rows, err := tr.GetAppUsageForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetAppUsageForDate() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 after replacement", len(rows))
	}
	if rows[0].Duration != 90000 || rows[0].Source != models.UsageSourceStats {
		t.Errorf("row = %+v", rows[0])
	}

	if _, err := ui.IngestDay("bad-date", nil, models.UsageSourceStats); err == nil {
		t.Error("IngestDay() with bad date should fail")
	}
}

func TestHealthImport(t *testing.T) {
	tr := newTracker(t)
	hi := NewHealthImporter(tr)

	export := `{"workouts": [
		{"type": "running", "start_time": "2024-03-15T07:00:00Z", "end_time": "2024-03-15T07:45:00Z", "calories": 420, "distance": 7500, "steps": 8200},
		{"type": "swimming", "start_time": "2024-03-16T18:00:00Z", "end_time": "2024-03-16T18:30:00Z", "calories": 300}
	]}`

	path := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(path, []byte(export), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	n, err := hi.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}

	acts, err := tr.GetActivitiesByType("running", 0, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("GetActivitiesByType() error = %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("running activities = %d, want 1", len(acts))
	}
	a := acts[0]
	if a.Source != models.SourceHealth {
		t.Errorf("Source = %v, want health", a.Source)
	}
	if a.Duration != 2700 {
		t.Errorf("Duration = %d, want 2700 seconds", a.Duration)
	}
	if steps, ok := a.Metadata["steps"].(float64); !ok || steps != 8200 {
		t.Errorf("Metadata steps = %v", a.Metadata["steps"])
	}
}

func TestHealthImportRejectsBadTimes(t *testing.T) {
	tr := newTracker(t)
	hi := NewHealthImporter(tr)

	if _, err := hi.Import([]byte(`{"workouts": [{"type": "run", "start_time": "junk", "end_time": "junk"}]}`)); err == nil {
		t.Error("Import() with bad timestamps should fail")
	}
	if _, err := hi.Import([]byte(`{"workouts": [{"type": "run", "start_time": "2024-03-15T08:00:00Z", "end_time": "2024-03-15T07:00:00Z"}]}`)); err == nil {
		t.Error("Import() with end before start should fail")
	}
	if _, err := hi.Import([]byte(`not json`)); err == nil {
		t.Error("Import() with invalid JSON should fail")
	}
}

func TestDemoSeeder(t *testing.T) {
	tr := newTracker(t)
	ds := NewDemoSeeder(tr)

	if err := ds.SeedDay("2024-03-15"); err != nil {
		t.Fatalf("SeedDay() error = %v", err)
	}

	acts, err := tr.GetActivitiesForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetActivitiesForDate() error = %v", err)
	}
	if len(acts) < 2 {
		t.Errorf("activities = %d, want at least 2", len(acts))
	}
	for _, a := range acts {
		if batch, ok := a.Metadata["demo_batch"].(string); !ok || !strings.Contains(batch, "-") {
			t.Errorf("activity %d missing demo_batch metadata: %v", a.ID, a.Metadata)
		}
	}

	usage, err := tr.GetAppUsageForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetAppUsageForDate() error = %v", err)
	}
	if len(usage) != len(demoApps) {
		t.Errorf("usage rows = %d, want %d", len(usage), len(demoApps))
	}
	for _, u := range usage {
		if u.Source != models.UsageSourceDemo {
			t.Errorf("usage source = %v, want demo", u.Source)
		}
	}

	calls, err := tr.GetCallLogsForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetCallLogsForDate() error = %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("calls = %d, want 2", len(calls))
	}

	notes, err := tr.GetNotesForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetNotesForDate() error = %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("notes = %d, want 1", len(notes))
	}

	if err := ds.SeedDay("nope"); err == nil {
		t.Error("SeedDay() with bad date should fail")
	}
}
