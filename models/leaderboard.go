package models

type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
	Points       int     `json:"points"`
	ExactMatches int     `json:"exact_matches"`
}

// PredictionStats summarises one user's record against finished matches.
type PredictionStats struct {
	TotalFinished    int `json:"total_finished"`
	TotalPredicted   int `json:"total_predicted"`
	Exact            int `json:"exact"`
	Correct          int `json:"correct"`
	Missed           int `json:"missed"`
	Accuracy         int `json:"accuracy"`
	ExactPct         int `json:"exact_pct"`
	CurrentStreak    int `json:"current_streak"`
	Points           int `json:"points"`
	ExactMatches     int `json:"exact_matches"`
	UnpredictedCount int `json:"unpredicted_count"`
	OpenCount        int `json:"open_count"`
}
