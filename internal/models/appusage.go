// ABOUTME: App usage model for per-session screen time records
// ABOUTME: SessionDate is denormalized for cheap day-range queries
package models

// App usage sources.
const (
	UsageSourceManual = "manual"
	UsageSourceStats  = "android_usage_stats"
	UsageSourceDemo   = "demo_usage"
)

// AppUsage is one app usage session. Duration and Timestamp are
// milliseconds; SessionDate is the local calendar day as YYYY-MM-DD.
type AppUsage struct {
	ID          int64  `json:"id"`
	AppName     string `json:"app_name"`
	PackageName string `json:"package_name"`
	Category    string `json:"category,omitempty"`
	Duration    int64  `json:"duration"`
	Timestamp   int64  `json:"timestamp"`
	SessionDate string `json:"session_date"`
	Source      string `json:"source"`
}
