package models

import "time"

// Prediction is one user's forecast for one match. At most one exists per
// (UserEmail, MatchID) pair.
type Prediction struct {
	UserEmail string    `json:"user_email"`
	MatchID   string    `json:"match_id"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
