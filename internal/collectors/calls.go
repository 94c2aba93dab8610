// ABOUTME: Call log ingestion from a device call-history reader
// ABOUTME: Validates call types and inserts in bulk
package collectors

import (
	"fmt"
	"log"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// CallIngester stores batches of call history records.
type CallIngester struct {
	tracker *sqlite.Tracker
}

// NewCallIngester creates a call log ingester.
func NewCallIngester(tracker *sqlite.Tracker) *CallIngester {
	return &CallIngester{tracker: tracker}
}

// Ingest inserts a batch of call records. Records with an unknown call
// type are rejected before anything is written.
func (ci *CallIngester) Ingest(calls []models.CallLog) (int, error) {
	for i, c := range calls {
		switch c.CallType {
		case models.CallIncoming, models.CallOutgoing, models.CallMissed:
		default:
			return 0, fmt.Errorf("record %d: unknown call type %q", i, c.CallType)
		}
		if c.PhoneNumber == "" {
			return 0, fmt.Errorf("record %d: phone number is required", i)
		}
	}

	for i := range calls {
		if _, err := ci.tracker.AddCallLog(&calls[i]); err != nil {
			return i, err
		}
	}

	log.Printf("[Collector] Ingested %d call log entries", len(calls))
	return len(calls), nil
}
