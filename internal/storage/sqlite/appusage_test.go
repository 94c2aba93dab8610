// ABOUTME: Tests for app usage storage operations
// ABOUTME: Covers session-date derivation, stats, and rankings
package sqlite

import (
	"testing"
	"time"

	"github.com/minakami/minakami/internal/models"
)

func TestAppUsageAddDerivesSessionDate(t *testing.T) {
	db := newTestDB(t)
	store := NewAppUsageStore(db, nil)

	ts := millis(2024, time.March, 15, 21, 30, 0, 0)
	if _, err := store.Add(&models.AppUsage{
		AppName:     "Maps",
		PackageName: "com.example.maps",
		Duration:    5 * 60 * 1000,
		Timestamp:   ts,
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	usage, err := store.GetForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetForDate() error = %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("GetForDate() len = %d, want 1", len(usage))
	}
	if usage[0].SessionDate != "2024-03-15" {
		t.Errorf("SessionDate = %v, want 2024-03-15", usage[0].SessionDate)
	}
	if usage[0].Source != models.UsageSourceManual {
		t.Errorf("Source = %v, want manual default", usage[0].Source)
	}
}

func TestAppUsageStatsDefaults(t *testing.T) {
	db := newTestDB(t)
	store := NewAppUsageStore(db, nil)

	stats, err := store.Stats("2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats != (models.AppUsageStats{}) {
		t.Errorf("empty Stats() = %+v, want zeros", stats)
	}
}

func TestAppUsageStatsAndRankings(t *testing.T) {
	db := newTestDB(t)
	store := NewAppUsageStore(db, nil)

	sessions := []models.AppUsage{
		{AppName: "Maps", PackageName: "com.example.maps", Category: "travel", Duration: 600, Timestamp: 1, SessionDate: "2024-03-15"},
		{AppName: "Maps", PackageName: "com.example.maps", Category: "travel", Duration: 300, Timestamp: 2, SessionDate: "2024-03-15"},
		{AppName: "Chat", PackageName: "com.example.chat", Category: "social", Duration: 1200, Timestamp: 3, SessionDate: "2024-03-15"},
		{AppName: "Chat", PackageName: "com.example.chat", Category: "social", Duration: 400, Timestamp: 4, SessionDate: "2024-03-16"},
	}
	for i := range sessions {
		if _, err := store.Add(&sessions[i]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	stats, err := store.Stats("2024-03-15", "2024-03-15")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalDuration != 2100 {
		t.Errorf("TotalDuration = %d, want 2100", stats.TotalDuration)
	}
	if stats.AppCount != 2 {
		t.Errorf("AppCount = %d, want 2", stats.AppCount)
	}
	if stats.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", stats.SessionCount)
	}

	top, err := store.TopApps("2024-03-15", "2024-03-16", 1)
	if err != nil {
		t.Fatalf("TopApps() error = %v", err)
	}
	if len(top) != 1 || top[0].AppName != "Chat" || top[0].TotalDuration != 1600 {
		t.Errorf("TopApps() = %+v, want Chat with 1600", top)
	}

	cats, err := store.CategoryBreakdown("2024-03-15", "2024-03-16")
	if err != nil {
		t.Fatalf("CategoryBreakdown() error = %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("CategoryBreakdown() len = %d, want 2", len(cats))
	}
	if cats[0].Category != "social" || cats[0].TotalDuration != 1600 {
		t.Errorf("top category = %+v, want social with 1600", cats[0])
	}
}

func TestAppUsageDeleteForDate(t *testing.T) {
	db := newTestDB(t)
	store := NewAppUsageStore(db, nil)

	for i := 0; i < 3; i++ {
		if _, err := store.Add(&models.AppUsage{
			AppName: "Maps", PackageName: "m", Duration: 100, Timestamp: int64(i), SessionDate: "2024-03-15",
		}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if _, err := store.Add(&models.AppUsage{
		AppName: "Maps", PackageName: "m", Duration: 100, Timestamp: 9, SessionDate: "2024-03-16",
	}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	n, err := store.DeleteForDate("2024-03-15")
	if err != nil {
		t.Fatalf("DeleteForDate() error = %v", err)
	}
	if n != 3 {
		t.Errorf("DeleteForDate() = %d, want 3", n)
	}

	left, err := store.GetForRange("2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("GetForRange() error = %v", err)
	}
	if len(left) != 1 {
		t.Errorf("remaining sessions = %d, want 1", len(left))
	}
}
