package models

import "time"

// Session is a logged mood-tracking session owned by a user.
type Session struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Mood            *string   `json:"mood"`
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds int       `json:"duration_seconds"`
}
