// ABOUTME: Shared test fixtures for the sqlite package
// ABOUTME: In-memory databases bootstrapped through the full startup path
package sqlite

import (
	"testing"
	"time"
)

// newTestDB returns a bootstrapped in-memory database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	if err := db.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestTracker returns an initialized in-memory tracker.
func newTestTracker(t *testing.T) *Tracker {
	t.Helper()

	tr, err := NewTrackerInMemory()
	if err != nil {
		t.Fatalf("NewTrackerInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = tr.Close() })
	return tr
}

// millis builds an epoch-millisecond timestamp in local time, matching
// how day-range bounds are computed.
func millis(year int, month time.Month, day, hour, min, sec, ms int) int64 {
	return time.Date(year, month, day, hour, min, sec, ms*int(time.Millisecond), time.Local).UnixMilli()
}
