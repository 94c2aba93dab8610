// ABOUTME: Tests for daily and narrative summary storage
// ABOUTME: Verifies replace-on-conflict upserts and the location join
package sqlite

import (
	"testing"

	"github.com/minakami/minakami/internal/models"
)

func TestNarrativeUpsertReplaces(t *testing.T) {
	db := newTestDB(t)
	store := NewSummaryStore(db, nil)

	if err := store.UpsertNarrative("2024-01-01", "A"); err != nil {
		t.Fatalf("UpsertNarrative(A) error = %v", err)
	}
	if err := store.UpsertNarrative("2024-01-01", "B"); err != nil {
		t.Fatalf("UpsertNarrative(B) error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM narrative_summaries WHERE date = '2024-01-01'").Scan(&count); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}

	got, err := store.GetNarrative("2024-01-01")
	if err != nil {
		t.Fatalf("GetNarrative() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetNarrative() returned nil")
	}
	if got.Summary != "B" {
		t.Errorf("Summary = %v, want B", got.Summary)
	}
}

func TestGetNarrativeAbsent(t *testing.T) {
	db := newTestDB(t)
	store := NewSummaryStore(db, nil)

	got, err := store.GetNarrative("2030-01-01")
	if err != nil {
		t.Fatalf("GetNarrative() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetNarrative() = %+v, want nil", got)
	}
}

func TestNarrativeRange(t *testing.T) {
	db := newTestDB(t)
	store := NewSummaryStore(db, nil)

	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-05"} {
		if err := store.UpsertNarrative(d, "day "+d); err != nil {
			t.Fatalf("UpsertNarrative(%s) error = %v", d, err)
		}
	}

	ns, err := store.GetNarrativeRange("2024-01-01", "2024-01-03")
	if err != nil {
		t.Fatalf("GetNarrativeRange() error = %v", err)
	}
	if len(ns) != 2 {
		t.Fatalf("GetNarrativeRange() len = %d, want 2", len(ns))
	}
	if ns[0].Date != "2024-01-01" || ns[1].Date != "2024-01-02" {
		t.Errorf("range order = %v, %v", ns[0].Date, ns[1].Date)
	}
}

func TestDailySummaryUpsertAndJoin(t *testing.T) {
	db := newTestDB(t)
	locations := NewLocationStore(db, nil)
	store := NewSummaryStore(db, nil)

	locID, err := locations.Add(&models.Location{Latitude: 35.68, Longitude: 139.76, Timestamp: 1, Name: "office"})
	if err != nil {
		t.Fatalf("Add(location) error = %v", err)
	}

	sum := &models.DailySummary{
		Date:                  "2024-03-15",
		MorningActivity:       "walking",
		EveningActivity:       "running",
		TotalSteps:            8400,
		ActiveMinutes:         72,
		MostVisitedLocationID: &locID,
		MostCalledContact:     "Aiko",
		SummaryData:           map[string]any{"mood": "good"},
	}
	if err := store.UpsertDaily(sum); err != nil {
		t.Fatalf("UpsertDaily() error = %v", err)
	}

	got, err := store.GetDaily("2024-03-15")
	if err != nil {
		t.Fatalf("GetDaily() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetDaily() returned nil")
	}
	if got.MostVisitedLocationName != "office" {
		t.Errorf("MostVisitedLocationName = %v, want office", got.MostVisitedLocationName)
	}
	if got.SummaryData["mood"] != "good" {
		t.Errorf("SummaryData[mood] = %v, want good", got.SummaryData["mood"])
	}

	// Replace with a sparse row: prior fields are gone, not merged.
	if err := store.UpsertDaily(&models.DailySummary{Date: "2024-03-15", TotalSteps: 100}); err != nil {
		t.Fatalf("UpsertDaily(replace) error = %v", err)
	}
	got, err = store.GetDaily("2024-03-15")
	if err != nil {
		t.Fatalf("GetDaily() after replace error = %v", err)
	}
	if got.TotalSteps != 100 {
		t.Errorf("TotalSteps = %d, want 100", got.TotalSteps)
	}
	if got.MorningActivity != "" {
		t.Errorf("MorningActivity = %q, want empty after replace", got.MorningActivity)
	}
	if got.MostVisitedLocationID != nil {
		t.Errorf("MostVisitedLocationID = %v, want nil after replace", *got.MostVisitedLocationID)
	}
	if len(got.SummaryData) != 0 {
		t.Errorf("SummaryData = %v, want empty after replace", got.SummaryData)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM daily_summaries").Scan(&count); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 1 {
		t.Errorf("row count = %d, want 1", count)
	}
}

func TestGetDailyAbsent(t *testing.T) {
	db := newTestDB(t)
	store := NewSummaryStore(db, nil)

	got, err := store.GetDaily("2030-01-01")
	if err != nil {
		t.Fatalf("GetDaily() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetDaily() = %+v, want nil", got)
	}
}
