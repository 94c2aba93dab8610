// ABOUTME: Tests for storage encodings shared by the stores
// ABOUTME: Day-bound calendar math across DST transitions, error wrapping details
package sqlite

import (
	"errors"
	"testing"
	"time"
)

// inLocation runs fn with time.Local overridden, restoring it after.
func inLocation(t *testing.T, name string, fn func()) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone data for %s unavailable: %v", name, err)
	}
	old := time.Local
	time.Local = loc
	defer func() { time.Local = old }()
	fn()
}

func TestDayBoundsSpringForward(t *testing.T) {
	// 2024-03-10 in America/New_York has 23 local hours.
	inLocation(t, "America/New_York", func() {
		start, end, err := dayBounds("2024-03-10")
		if err != nil {
			t.Fatalf("dayBounds() error = %v", err)
		}

		if got := end - start; got != (23*time.Hour - time.Millisecond).Milliseconds() {
			t.Errorf("day span = %dms, want 23h-1ms", got)
		}

		endT := time.UnixMilli(end).In(time.Local)
		if endT.Day() != 10 || endT.Hour() != 23 || endT.Minute() != 59 {
			t.Errorf("end = %v, want 23:59:59.999 on March 10", endT)
		}

		// Half past midnight the next day must fall outside the bound.
		nextDay := time.Date(2024, time.March, 11, 0, 30, 0, 0, time.Local).UnixMilli()
		if nextDay <= end {
			t.Errorf("next-day 00:30 (%d) inside bounds ending %d", nextDay, end)
		}
	})
}

func TestDayBoundsFallBack(t *testing.T) {
	// 2024-11-03 in America/New_York has 25 local hours.
	inLocation(t, "America/New_York", func() {
		start, end, err := dayBounds("2024-11-03")
		if err != nil {
			t.Fatalf("dayBounds() error = %v", err)
		}

		if got := end - start; got != (25*time.Hour - time.Millisecond).Milliseconds() {
			t.Errorf("day span = %dms, want 25h-1ms", got)
		}

		// The last local hour of the day must stay inside the bound.
		lateEvening := time.Date(2024, time.November, 3, 23, 30, 0, 0, time.Local).UnixMilli()
		if lateEvening > end {
			t.Errorf("23:30 local (%d) outside bounds ending %d", lateEvening, end)
		}
	})
}

func TestDayBoundsRejectsBadDate(t *testing.T) {
	if _, _, err := dayBounds("03/10/2024"); err == nil {
		t.Error("dayBounds() with bad format should fail")
	}
}

func TestQueryErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("no such table: nope")
	qe := &QueryError{Stmt: "SELECT *\n\tFROM nope", Err: cause}

	if !errors.Is(qe, cause) {
		t.Error("QueryError should unwrap to its cause")
	}
	if got := qe.Error(); got != "query failed: no such table: nope (stmt: SELECT * FROM nope)" {
		t.Errorf("Error() = %q", got)
	}
}
