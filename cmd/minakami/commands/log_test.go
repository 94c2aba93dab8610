// ABOUTME: End-to-end tests for log, init, and stats commands
// ABOUTME: Runs real commands against a temp database file
package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// runCLI executes the root command with --db pointed at a temp file.
func runCLI(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs(append([]string{"--db", db}, args...))
	err := cmd.Execute()
	return output.String(), err
}

func TestInitCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tracker.db")

	out, err := runCLI(t, db, "init")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, "Database ready") {
		t.Errorf("init output = %q", out)
	}

	// Second run must succeed with nothing left to apply.
	out, err = runCLI(t, db, "init")
	if err != nil {
		t.Fatalf("second init error = %v", err)
	}
	if !strings.Contains(out, "0 of") {
		t.Errorf("second init output = %q, want no migrations applied", out)
	}
}

func TestLogActivityCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tracker.db")

	out, err := runCLI(t, db, "log", "activity", "running", "--minutes", "30", "--distance", "5000")
	if err != nil {
		t.Fatalf("log activity error = %v", err)
	}
	if !strings.Contains(out, "Logged running") {
		t.Errorf("output = %q", out)
	}

	if _, err := runCLI(t, db, "log", "activity", "running", "--minutes", "-5"); err == nil {
		t.Error("log activity with negative minutes should fail")
	}
}

func TestLogNoteAndStatsCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tracker.db")

	if _, err := runCLI(t, db, "log", "note", "tried the new coffee place", "--date", "2024-03-15"); err != nil {
		t.Fatalf("log note error = %v", err)
	}
	if _, err := runCLI(t, db, "log", "call", "incoming", "+81-90-1111", "--seconds", "120"); err != nil {
		t.Fatalf("log call error = %v", err)
	}

	out, err := runCLI(t, db, "stats", "2024-03-15")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if !strings.Contains(out, "coffee place") {
		t.Errorf("stats output missing note:\n%s", out)
	}
}

func TestLogLocationMergeCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tracker.db")

	out, err := runCLI(t, db, "log", "location", "35.6812", "139.7671", "--name", "Home")
	if err != nil {
		t.Fatalf("log location error = %v", err)
	}
	if !strings.Contains(out, "New place") {
		t.Errorf("first sample output = %q", out)
	}

	out, err = runCLI(t, db, "log", "location", "35.6813", "139.7671")
	if err != nil {
		t.Fatalf("log location error = %v", err)
	}
	if !strings.Contains(out, "Revisit") {
		t.Errorf("nearby sample output = %q, want revisit", out)
	}
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "tracker.db")
	outFile := filepath.Join(dir, "backup.json")

	if _, err := runCLI(t, db, "log", "note", "export me"); err != nil {
		t.Fatalf("log note error = %v", err)
	}

	out, err := runCLI(t, db, "export", "--out", outFile)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Exported") {
		t.Errorf("export output = %q", out)
	}

	if _, err := runCLI(t, db, "export", "--out", outFile, "--format", "xml"); err == nil {
		t.Error("export with unknown format should fail")
	}
}
