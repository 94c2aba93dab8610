// ABOUTME: Aggregate statistics structures returned by store queries
// ABOUTME: All stats are zero-valued, never nil, when no rows match
package models

// ActivityStats summarizes activities over a time range.
type ActivityStats struct {
	TotalActivities int64   `json:"total_activities"`
	TotalDuration   int64   `json:"total_duration"`
	TotalCalories   float64 `json:"total_calories"`
	TotalDistance   float64 `json:"total_distance"`
}

// ActivityTypeCount is one row of a per-type activity breakdown.
type ActivityTypeCount struct {
	Type          string `json:"type"`
	Count         int64  `json:"count"`
	TotalDuration int64  `json:"total_duration"`
}

// LocationStats summarizes stored locations.
type LocationStats struct {
	TotalLocations int64 `json:"total_locations"`
	TotalVisits    int64 `json:"total_visits"`
	NamedLocations int64 `json:"named_locations"`
}

// CallStats summarizes call history over a time range.
type CallStats struct {
	TotalCalls    int64 `json:"total_calls"`
	IncomingCalls int64 `json:"incoming_calls"`
	OutgoingCalls int64 `json:"outgoing_calls"`
	MissedCalls   int64 `json:"missed_calls"`
	TotalDuration int64 `json:"total_duration"`
}

// ContactStat is one entry of a most-called-contacts ranking.
type ContactStat struct {
	PhoneNumber   string `json:"phone_number"`
	ContactName   string `json:"contact_name,omitempty"`
	CallCount     int64  `json:"call_count"`
	TotalDuration int64  `json:"total_duration"`
}

// AppUsageStats summarizes app usage over a day range.
type AppUsageStats struct {
	TotalDuration int64 `json:"total_duration"`
	AppCount      int64 `json:"app_count"`
	SessionCount  int64 `json:"session_count"`
}

// AppUsageEntry is one row of a per-app usage ranking.
type AppUsageEntry struct {
	AppName       string `json:"app_name"`
	PackageName   string `json:"package_name"`
	TotalDuration int64  `json:"total_duration"`
}

// CategoryUsage is one row of a per-category usage breakdown.
type CategoryUsage struct {
	Category      string `json:"category"`
	TotalDuration int64  `json:"total_duration"`
}
