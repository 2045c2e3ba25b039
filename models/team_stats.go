package models

// TeamStats is one row of a group standings table. It is derived from match
// results on demand and never stored.
type TeamStats struct {
	Team           string `json:"team"`
	Flag           string `json:"flag,omitempty"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

type GroupStandings struct {
	Group string      `json:"group"`
	Table []TeamStats `json:"table"`
}
