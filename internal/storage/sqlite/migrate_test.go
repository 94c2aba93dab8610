// ABOUTME: Tests for additive migrations and index creation
// ABOUTME: Verifies explicit applied/skipped outcomes across reruns
package sqlite

import (
	"errors"
	"testing"
)

func TestMigrationsApplyThenSkip(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	first := db.ApplyMigrations()
	if len(first) == 0 {
		t.Fatal("ApplyMigrations() returned no results")
	}
	for _, r := range first {
		if r.Outcome != MigrationApplied {
			t.Errorf("first run %s.%s outcome = %v, want MigrationApplied (err: %v)",
				r.Table, r.Column, r.Outcome, r.Err)
		}
	}

	second := db.ApplyMigrations()
	for _, r := range second {
		if r.Outcome != MigrationSkipped {
			t.Errorf("second run %s.%s outcome = %v, want MigrationSkipped (err: %v)",
				r.Table, r.Column, r.Outcome, r.Err)
		}
	}
}

func TestMigratedColumnsUsable(t *testing.T) {
	db := newTestDB(t)

	if _, err := db.Exec(`
		INSERT INTO activities (type, start_time, strava_id, heart_rate_avg, heart_rate_max, elevation_gain)
		VALUES ('run', 1, 's9', 140, 172, 55)
	`); err != nil {
		t.Fatalf("insert with migrated columns error = %v", err)
	}

	var hrAvg float64
	if err := db.QueryRow("SELECT heart_rate_avg FROM activities WHERE strava_id = 's9'").Scan(&hrAvg); err != nil {
		t.Fatalf("select migrated column error = %v", err)
	}
	if hrAvg != 140 {
		t.Errorf("heart_rate_avg = %v, want 140", hrAvg)
	}
}

func TestIsDuplicateColumn(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec("ALTER TABLE activities ADD COLUMN strava_id TEXT")
	if err == nil {
		t.Fatal("re-adding strava_id should fail")
	}
	if !isDuplicateColumn(err) {
		t.Errorf("isDuplicateColumn(%v) = false, want true", err)
	}
	if isDuplicateColumn(errors.New("disk I/O error")) {
		t.Error("isDuplicateColumn(disk error) = true, want false")
	}
}

func TestCreateIndexesIdempotent(t *testing.T) {
	db := newTestDB(t)

	// Second run must be silent and leave the index set intact.
	db.CreateIndexes()

	var n int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name LIKE 'idx_%'
	`).Scan(&n)
	if err != nil {
		t.Fatalf("index count error = %v", err)
	}
	if n < 10 {
		t.Errorf("index count = %d, want at least 10", n)
	}
}
