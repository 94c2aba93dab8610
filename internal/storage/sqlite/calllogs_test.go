// ABOUTME: Tests for call log storage operations
// ABOUTME: Covers stats by call type, analysis flags, and top contacts
package sqlite

import (
	"testing"
	"time"

	"github.com/minakami/minakami/internal/models"
)

func TestCallLogCRUD(t *testing.T) {
	db := newTestDB(t)
	store := NewCallLogStore(db, nil)

	id, err := store.Add(&models.CallLog{
		PhoneNumber: "+81901234567",
		ContactName: "Yuki",
		CallType:    models.CallIncoming,
		CallDate:    millis(2024, time.March, 15, 14, 0, 0, 0),
		Duration:    125,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() returned nil")
	}
	if got.ContactName != "Yuki" {
		t.Errorf("ContactName = %v, want Yuki", got.ContactName)
	}
	if got.IsAnalyzed {
		t.Error("IsAnalyzed = true, want false default")
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	got, err = store.GetByID(id)
	if err != nil {
		t.Fatalf("GetByID() after delete error = %v", err)
	}
	if got != nil {
		t.Error("GetByID() should return nil after delete")
	}
}

func TestCallAnalysisFlag(t *testing.T) {
	db := newTestDB(t)
	store := NewCallLogStore(db, nil)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := store.Add(&models.CallLog{
			PhoneNumber: "+100",
			CallType:    models.CallOutgoing,
			CallDate:    int64(1000 + i),
			Duration:    10,
		})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		ids = append(ids, id)
	}

	pending, err := store.GetUnanalyzed(10)
	if err != nil {
		t.Fatalf("GetUnanalyzed() error = %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("GetUnanalyzed() len = %d, want 3", len(pending))
	}
	// Oldest first.
	if pending[0].ID != ids[0] {
		t.Errorf("first pending = %d, want oldest %d", pending[0].ID, ids[0])
	}

	if err := store.MarkAnalyzed(ids[0]); err != nil {
		t.Fatalf("MarkAnalyzed() error = %v", err)
	}
	pending, err = store.GetUnanalyzed(10)
	if err != nil {
		t.Fatalf("GetUnanalyzed() error = %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("GetUnanalyzed() after mark len = %d, want 2", len(pending))
	}
}

func TestCallStatsDefaultsAndCounts(t *testing.T) {
	db := newTestDB(t)
	store := NewCallLogStore(db, nil)

	stats, err := store.Stats(0, 10)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats != (models.CallStats{}) {
		t.Errorf("empty Stats() = %+v, want zeros", stats)
	}

	calls := []models.CallLog{
		{PhoneNumber: "+1", CallType: models.CallIncoming, CallDate: 100, Duration: 60},
		{PhoneNumber: "+1", CallType: models.CallOutgoing, CallDate: 200, Duration: 120},
		{PhoneNumber: "+2", CallType: models.CallMissed, CallDate: 300, Duration: 0},
		{PhoneNumber: "+2", CallType: models.CallIncoming, CallDate: 400, Duration: 30},
	}
	for i := range calls {
		if _, err := store.Add(&calls[i]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	stats, err = store.Stats(0, 1000)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	want := models.CallStats{TotalCalls: 4, IncomingCalls: 2, OutgoingCalls: 1, MissedCalls: 1, TotalDuration: 210}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func TestTopContacts(t *testing.T) {
	db := newTestDB(t)
	store := NewCallLogStore(db, nil)

	calls := []models.CallLog{
		{PhoneNumber: "+1", ContactName: "Aiko", CallType: models.CallIncoming, CallDate: 100, Duration: 60},
		{PhoneNumber: "+1", ContactName: "Aiko", CallType: models.CallOutgoing, CallDate: 200, Duration: 40},
		{PhoneNumber: "+1", ContactName: "Aiko", CallType: models.CallOutgoing, CallDate: 300, Duration: 20},
		{PhoneNumber: "+2", ContactName: "Ren", CallType: models.CallIncoming, CallDate: 400, Duration: 600},
	}
	for i := range calls {
		if _, err := store.Add(&calls[i]); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	top, err := store.TopContacts(0, 1000, 5)
	if err != nil {
		t.Fatalf("TopContacts() error = %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopContacts() len = %d, want 2", len(top))
	}
	if top[0].ContactName != "Aiko" || top[0].CallCount != 3 {
		t.Errorf("top contact = %+v, want Aiko x3", top[0])
	}
	if top[0].TotalDuration != 120 {
		t.Errorf("top contact duration = %d, want 120", top[0].TotalDuration)
	}
}

func TestCallLogsForDate(t *testing.T) {
	db := newTestDB(t)
	store := NewCallLogStore(db, nil)

	inside := millis(2024, time.March, 15, 8, 0, 0, 0)
	outside := millis(2024, time.March, 16, 8, 0, 0, 0)
	if _, err := store.Add(&models.CallLog{PhoneNumber: "+1", CallType: models.CallIncoming, CallDate: inside}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := store.Add(&models.CallLog{PhoneNumber: "+2", CallType: models.CallIncoming, CallDate: outside}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	calls, err := store.GetForDate("2024-03-15")
	if err != nil {
		t.Fatalf("GetForDate() error = %v", err)
	}
	if len(calls) != 1 || calls[0].PhoneNumber != "+1" {
		t.Errorf("GetForDate() = %+v, want only +1", calls)
	}
}
