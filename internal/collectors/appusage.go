// ABOUTME: App usage ingestion from usage-stats collectors
// ABOUTME: Replaces a day's records so re-collection does not double-count
package collectors

import (
	"fmt"
	"log"
	"time"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// UsageIngester stores app usage sessions collected for one day.
type UsageIngester struct {
	tracker *sqlite.Tracker
}

// NewUsageIngester creates an app usage ingester.
func NewUsageIngester(tracker *sqlite.Tracker) *UsageIngester {
	return &UsageIngester{tracker: tracker}
}

// IngestDay replaces the stored usage for the day the records belong to.
// Usage-stats collectors report cumulative daily totals, so the previous
// snapshot for that day is deleted first.
func (ui *UsageIngester) IngestDay(date string, records []models.AppUsage, source string) (int, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}

	deleted, err := ui.tracker.DeleteAppUsageForDate(date)
	if err != nil {
		return 0, err
	}

	for i := range records {
		records[i].SessionDate = date
		if records[i].Source == "" {
			records[i].Source = source
		}
		if _, err := ui.tracker.AddAppUsage(&records[i]); err != nil {
			return i, err
		}
	}

	log.Printf("[Collector] App usage for %s: replaced %d rows with %d", date, deleted, len(records))
	return len(records), nil
}
