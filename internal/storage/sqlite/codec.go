// ABOUTME: JSON column and calendar-day helpers shared by the stores
// ABOUTME: Defines the storage encodings for metadata and date bounds
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// dayFormat is the canonical day-string representation.
const dayFormat = "2006-01-02"

// marshalJSONColumn serializes an opaque metadata value. An absent value
// stores as an empty object, never NULL.
func marshalJSONColumn(v map[string]any) (string, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(b), nil
}

// unmarshalJSONColumn parses an opaque metadata column back into a map.
// Empty, NULL, or corrupt values all come back as an empty object so
// callers never null-check.
func unmarshalJSONColumn(s sql.NullString) map[string]any {
	if !s.Valid || s.String == "" {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s.String), &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// dayBounds returns the inclusive epoch-millisecond bounds of the local
// calendar day: [00:00:00.000, 23:59:59.999]. The end is derived from
// the next calendar day's midnight, not a fixed 24 hours, so DST
// transition days (23 or 25 local hours) keep their calendar boundary.
func dayBounds(date string) (int64, int64, error) {
	start, err := time.ParseInLocation(dayFormat, date, time.Local)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, time.Local).
		Add(-time.Millisecond)
	return start.UnixMilli(), end.UnixMilli(), nil
}

// nullString converts an empty string to sql.NullString.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullInt64 converts a nil pointer to sql.NullInt64.
func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
