// ABOUTME: Additive schema migrations and index creation
// ABOUTME: At-least-once, idempotent by convention; never aborts startup
package sqlite

import (
	"log"
	"strings"
)

// MigrationOutcome names what happened to one migration statement.
type MigrationOutcome int

const (
	// MigrationApplied means the column was added by this run.
	MigrationApplied MigrationOutcome = iota
	// MigrationSkipped means the column already existed from a prior run.
	MigrationSkipped
	// MigrationFailed means the statement failed for another reason.
	// Startup continues; the missing column degrades functionality
	// rather than making the database unusable.
	MigrationFailed
)

func (o MigrationOutcome) String() string {
	switch o {
	case MigrationApplied:
		return "applied"
	case MigrationSkipped:
		return "skipped"
	case MigrationFailed:
		return "failed"
	}
	return "unknown"
}

// MigrationResult reports the outcome of one migration statement.
type MigrationResult struct {
	Table   string
	Column  string
	Outcome MigrationOutcome
	Err     error
}

// migration is one additive column change. Order matters: the list is
// append-only and replayed on every startup.
type migration struct {
	table  string
	column string
	stmt   string
}

var migrations = []migration{
	{"activities", "strava_id", "ALTER TABLE activities ADD COLUMN strava_id TEXT"},
	{"activities", "heart_rate_avg", "ALTER TABLE activities ADD COLUMN heart_rate_avg REAL DEFAULT 0"},
	{"activities", "heart_rate_max", "ALTER TABLE activities ADD COLUMN heart_rate_max REAL DEFAULT 0"},
	{"activities", "elevation_gain", "ALTER TABLE activities ADD COLUMN elevation_gain REAL DEFAULT 0"},
	{"locations", "visit_count", "ALTER TABLE locations ADD COLUMN visit_count INTEGER DEFAULT 1"},
	{"locations", "last_visited", "ALTER TABLE locations ADD COLUMN last_visited INTEGER"},
	{"call_logs", "is_analyzed", "ALTER TABLE call_logs ADD COLUMN is_analyzed INTEGER DEFAULT 0"},
	{"app_usage", "source", "ALTER TABLE app_usage ADD COLUMN source TEXT DEFAULT 'manual'"},
}

// ApplyMigrations replays the additive migration list. There is no
// version table; a column that already exists is a skip, anything else
// that fails is logged and skipped. Never fatal.
func (db *DB) ApplyMigrations() []MigrationResult {
	results := make([]MigrationResult, 0, len(migrations))

	for _, m := range migrations {
		res := MigrationResult{Table: m.table, Column: m.column}
		if _, err := db.Exec(m.stmt); err != nil {
			if isDuplicateColumn(err) {
				res.Outcome = MigrationSkipped
			} else {
				res.Outcome = MigrationFailed
				res.Err = err
				log.Printf("[Migrate] %s.%s failed: %v", m.table, m.column, err)
			}
		} else {
			res.Outcome = MigrationApplied
			log.Printf("[Migrate] added column %s.%s", m.table, m.column)
		}
		results = append(results, res)
	}

	return results
}

// CreateIndexes creates all indexes. Failures are logged and never
// fatal; a missing index only costs query time.
func (db *DB) CreateIndexes() {
	for _, stmt := range strings.Split(Indexes, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("[Migrate] index creation failed: %v", err)
		}
	}
}

// isDuplicateColumn reports whether err is SQLite's complaint about an
// ALTER TABLE ADD COLUMN hitting an existing column.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
