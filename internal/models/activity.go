// ABOUTME: Activity model for tracked physical and daily activities
// ABOUTME: Covers manual entries, imported health data, and Strava imports
package models

// Activity sources. Anything else is treated as an external collector name.
const (
	SourceManual = "manual"
	SourceStrava = "strava"
	SourceHealth = "health"
)

// Activity represents one tracked activity (a walk, a run, a workout).
// Times are epoch milliseconds; Duration is seconds.
type Activity struct {
	ID            int64          `json:"id"`
	Type          string         `json:"type"`
	StartTime     int64          `json:"start_time"`
	EndTime       int64          `json:"end_time"`
	Duration      int64          `json:"duration"`
	Details       string         `json:"details,omitempty"`
	Source        string         `json:"source"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Calories      float64        `json:"calories,omitempty"`
	Distance      float64        `json:"distance,omitempty"`
	SportType     string         `json:"sport_type,omitempty"`
	StravaID      string         `json:"strava_id,omitempty"`
	HeartRateAvg  float64        `json:"heart_rate_avg,omitempty"`
	HeartRateMax  float64        `json:"heart_rate_max,omitempty"`
	ElevationGain float64        `json:"elevation_gain,omitempty"`
}

// ActivityPatch carries a partial update for an activity.
// Nil fields are left unchanged.
type ActivityPatch struct {
	Type          *string
	StartTime     *int64
	EndTime       *int64
	Duration      *int64
	Details       *string
	Metadata      map[string]any
	Calories      *float64
	Distance      *float64
	SportType     *string
	HeartRateAvg  *float64
	HeartRateMax  *float64
	ElevationGain *float64
}
