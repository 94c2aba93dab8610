// ABOUTME: Location model for visited places and raw position samples
// ABOUTME: Tracks visit counts so frequent places can be ranked
package models

// Location represents a visited place. VisitCount starts at 1 and only
// ever grows; LastVisited is epoch milliseconds.
type Location struct {
	ID          int64   `json:"id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timestamp   int64   `json:"timestamp"`
	Accuracy    float64 `json:"accuracy,omitempty"`
	Name        string  `json:"name,omitempty"`
	VisitCount  int64   `json:"visit_count"`
	LastVisited int64   `json:"last_visited,omitempty"`
}

// LocationSample is a raw position fix from a tracking collector,
// before it has been merged into a known Location.
type LocationSample struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}
