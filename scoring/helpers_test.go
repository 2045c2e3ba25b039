package scoring

import (
	"testing"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
)

var kickoffBase = time.Date(2026, 6, 11, 20, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func finished(id, home, away string, hs, as int, group string, day int) models.Match {
	m := scheduled(id, home, away, group, day)
	m.Status = models.MatchStatusFinished
	m.HomeScore = intPtr(hs)
	m.AwayScore = intPtr(as)
	return m
}

func scheduled(id, home, away, group string, day int) models.Match {
	m := models.Match{
		ID:        id,
		HomeTeam:  home,
		AwayTeam:  away,
		KickoffAt: kickoffBase.AddDate(0, 0, day),
		Stage:     models.StageGroup,
		Status:    models.MatchStatusOpen,
	}
	if group != "" {
		m.Group = strPtr(group)
	}
	return m
}

func predict(email, matchID string, home, away int) models.Prediction {
	return models.Prediction{UserEmail: email, MatchID: matchID, HomeScore: home, AwayScore: away}
}

func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}
