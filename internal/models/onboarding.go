package models

import "time"

// OnboardingProfile is a profile submitted by a client before sign-up. It is
// keyed by an identifier the client generates and is not tied to a User.
type OnboardingProfile struct {
	ID           int64     `json:"id"`
	ClientUserID string    `json:"client_user_id"`
	DisplayName  string    `json:"display_name"`
	Age          int       `json:"age"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
