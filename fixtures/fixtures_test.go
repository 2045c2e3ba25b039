package fixtures

import (
	"testing"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/scoring"
)

func TestMatchesDecodesSchedule(t *testing.T) {
	matches, err := Matches()
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(matches) != 91 {
		t.Fatalf("expected 91 fixtures, got %d", len(matches))
	}

	stages := map[models.MatchStage]int{}
	for _, m := range matches {
		stages[m.Stage]++
		if m.Status != models.MatchStatusOpen || m.HomeScore != nil || m.AwayScore != nil {
			t.Fatalf("fixture %s should start open without score", m.ID)
		}
		if m.Stage == models.StageGroup && (m.Group == nil || !models.IsKnownGroup(*m.Group)) {
			t.Fatalf("group fixture %s has no valid group", m.ID)
		}
	}
	if stages[models.StageGroup] != 72 || stages[models.StageFinal] != 1 {
		t.Fatalf("unexpected stage counts: %v", stages)
	}
}

func TestEveryGroupHasFourTeams(t *testing.T) {
	matches, err := Matches()
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}

	labels := scoring.GroupLabels(matches)
	if len(labels) != len(models.Groups) {
		t.Fatalf("expected %d groups, got %v", len(models.Groups), labels)
	}
	for _, g := range labels {
		if table := scoring.CalculateGroupStandings(matches, g); len(table) != 4 {
			t.Fatalf("group %s has %d teams", g, len(table))
		}
	}
}
