// Package scoring holds the pure rules of the pool: how a prediction is
// judged against a final result, how user totals are derived, and how group
// tables and the leaderboard are ordered. Nothing here touches storage.
package scoring

import "github.com/Manuelherrera22/Quinela/models"

const (
	ExactScorePoints     = 5
	CorrectOutcomePoints = 3
	ChampionBonusPoints  = 10
)

type Outcome int

const (
	HomeWin Outcome = iota
	Draw
	AwayWin
)

func OutcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return HomeWin
	case home < away:
		return AwayWin
	default:
		return Draw
	}
}

type Verdict int

const (
	// VerdictPending means the match has no usable final result yet.
	VerdictPending Verdict = iota
	VerdictMiss
	VerdictOutcome
	VerdictExact
)

func (v Verdict) String() string {
	switch v {
	case VerdictMiss:
		return "miss"
	case VerdictOutcome:
		return "outcome"
	case VerdictExact:
		return "exact"
	default:
		return "pending"
	}
}

func (v Verdict) Points() int {
	switch v {
	case VerdictExact:
		return ExactScorePoints
	case VerdictOutcome:
		return CorrectOutcomePoints
	default:
		return 0
	}
}

// Classify judges a prediction against its match. A nil match, a match that
// is not finished, or one missing either score yields VerdictPending.
func Classify(p models.Prediction, m *models.Match) Verdict {
	home, away, ok := m.Result()
	if !ok {
		return VerdictPending
	}
	if p.HomeScore == home && p.AwayScore == away {
		return VerdictExact
	}
	if OutcomeOf(p.HomeScore, p.AwayScore) == OutcomeOf(home, away) {
		return VerdictOutcome
	}
	return VerdictMiss
}

type UserScore struct {
	Email        string `json:"email"`
	Points       int    `json:"points"`
	ExactMatches int    `json:"exact_matches"`
}

// ComputeUserScores derives every user's totals from scratch. The result has
// one entry per user, in the order users were given, whether or not the user
// has any prediction. Predictions whose match is unknown or unfinished add
// nothing. A nil champion means no bonus is awarded to anyone.
func ComputeUserScores(users []models.User, predictions []models.Prediction, matches []models.Match, champion *string) []UserScore {
	matchByID := make(map[string]*models.Match, len(matches))
	for i := range matches {
		matchByID[matches[i].ID] = &matches[i]
	}

	byUser := make(map[string][]models.Prediction)
	for _, p := range predictions {
		byUser[p.UserEmail] = append(byUser[p.UserEmail], p)
	}

	scores := make([]UserScore, 0, len(users))
	for _, u := range users {
		score := UserScore{Email: u.Email}
		for _, p := range byUser[u.Email] {
			verdict := Classify(p, matchByID[p.MatchID])
			score.Points += verdict.Points()
			if verdict == VerdictExact {
				score.ExactMatches++
			}
		}
		if champion != nil && u.SelectedChampion != nil && *u.SelectedChampion == *champion {
			score.Points += ChampionBonusPoints
		}
		scores = append(scores, score)
	}
	return scores
}
