// ABOUTME: Strava activity import into local storage
// ABOUTME: De-duplicates on strava_id by lookup before insert
package strava

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/minakami/minakami/internal/models"
	"github.com/minakami/minakami/internal/storage/sqlite"
)

// SyncResult reports what one sync run did.
type SyncResult struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Syncer imports Strava activities into the tracker.
type Syncer struct {
	client  *Client
	tracker *sqlite.Tracker
}

// NewSyncer creates a syncer over the given client and tracker.
func NewSyncer(client *Client, tracker *sqlite.Tracker) *Syncer {
	return &Syncer{client: client, tracker: tracker}
}

// Sync fetches activities after the given time and inserts the ones not
// already stored. An activity whose strava_id is already present is
// skipped, so re-running a sync is safe.
func (s *Syncer) Sync(ctx context.Context, after time.Time) (*SyncResult, error) {
	remote, err := s.client.ListActivities(ctx, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list Strava activities: %w", err)
	}

	result := &SyncResult{Fetched: len(remote)}
	for _, sa := range remote {
		stravaID := strconv.FormatInt(sa.ID, 10)

		existing, err := s.tracker.FindActivityByStravaID(stravaID)
		if err != nil {
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		activity, err := convertActivity(sa)
		if err != nil {
			log.Printf("[Strava] Skipping activity %s: %v", stravaID, err)
			result.Skipped++
			continue
		}

		if _, err := s.tracker.AddActivity(activity); err != nil {
			return result, fmt.Errorf("failed to store activity %s: %w", stravaID, err)
		}
		result.Imported++
	}

	log.Printf("[Strava] Sync complete: %d fetched, %d imported, %d skipped",
		result.Fetched, result.Imported, result.Skipped)
	return result, nil
}

// convertActivity maps a Strava summary onto the local activity model.
// Strava types like "Run" become lowercase local types.
func convertActivity(sa SummaryActivity) (*models.Activity, error) {
	start, err := time.Parse(time.RFC3339, sa.StartDate)
	if err != nil {
		return nil, fmt.Errorf("bad start_date %q: %w", sa.StartDate, err)
	}

	startMillis := start.UnixMilli()
	return &models.Activity{
		Type:          strings.ToLower(sa.Type),
		StartTime:     startMillis,
		EndTime:       startMillis + sa.ElapsedTime*1000,
		Duration:      sa.ElapsedTime,
		Details:       sa.Name,
		Source:        models.SourceStrava,
		Calories:      sa.Calories,
		Distance:      sa.Distance,
		SportType:     sa.SportType,
		StravaID:      strconv.FormatInt(sa.ID, 10),
		HeartRateAvg:  sa.AverageHR,
		HeartRateMax:  sa.MaxHR,
		ElevationGain: sa.TotalElevation,
		Metadata: map[string]any{
			"moving_time": sa.MovingTime,
		},
	}, nil
}
