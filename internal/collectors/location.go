// ABOUTME: Location sample ingestion with nearby-place merging
// ABOUTME: A sample near a known place becomes a revisit instead of a new row
package collectors

import (
	"fmt"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// LocationIngester merges raw position samples into known places.
type LocationIngester struct {
	tracker      *sqlite.Tracker
	radiusMeters float64
}

// NewLocationIngester creates an ingester that merges samples within
// radiusMeters of an existing location.
func NewLocationIngester(tracker *sqlite.Tracker, radiusMeters float64) *LocationIngester {
	return &LocationIngester{tracker: tracker, radiusMeters: radiusMeters}
}

// Ingest records one position sample. If a known location lies within
// the merge radius its visit count is bumped; otherwise a new location
// row is created. Returns the location ID and whether it was merged.
func (li *LocationIngester) Ingest(sample models.LocationSample) (int64, bool, error) {
	nearby, err := li.tracker.FindNearbyLocation(sample.Latitude, sample.Longitude, li.radiusMeters)
	if err != nil {
		return 0, false, fmt.Errorf("nearby lookup failed: %w", err)
	}

	if nearby != nil {
		if err := li.tracker.UpdateLocationVisit(nearby.ID, sample.Timestamp); err != nil {
			return 0, false, err
		}
		return nearby.ID, true, nil
	}

	id, err := li.tracker.AddLocation(&models.Location{
		Latitude:  sample.Latitude,
		Longitude: sample.Longitude,
		Timestamp: sample.Timestamp,
		Accuracy:  sample.Accuracy,
	})
	if err != nil {
		return 0, false, err
	}
	return id, false, nil
}
