// ABOUTME: Daily and narrative summary models, one row per calendar day
// ABOUTME: Both are upserted keyed on the YYYY-MM-DD date string
package models

// DailySummary aggregates one day of tracked data. Date is YYYY-MM-DD
// and unique. MostVisitedLocationID is a nullable reference into the
// locations table; MostVisitedLocationName is filled on read via join.
type DailySummary struct {
	ID                      int64          `json:"id"`
	Date                    string         `json:"date"`
	MorningActivity         string         `json:"morning_activity,omitempty"`
	AfternoonActivity       string         `json:"afternoon_activity,omitempty"`
	EveningActivity         string         `json:"evening_activity,omitempty"`
	TotalSteps              int64          `json:"total_steps"`
	ActiveMinutes           int64          `json:"active_minutes"`
	MostVisitedLocationID   *int64         `json:"most_visited_location,omitempty"`
	MostVisitedLocationName string         `json:"most_visited_location_name,omitempty"`
	MostCalledContact       string         `json:"most_called_contact,omitempty"`
	SummaryData             map[string]any `json:"summary_data,omitempty"`
}

// NarrativeSummary is the AI-generated prose summary for one day.
type NarrativeSummary struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
	CreatedAt int64  `json:"created_at,omitempty"`
}
