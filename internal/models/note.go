// ABOUTME: User daily note model for free-text journal entries
// ABOUTME: Multiple notes per day, fully mutable
package models

// UserDailyNote is a free-text note attached to a calendar day.
// Timestamps are epoch milliseconds.
type UserDailyNote struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
