// Package fixtures carries the tournament schedule shipped with the service.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
)

//go:embed matches.json
var matchesJSON []byte

type fixture struct {
	ID        string    `json:"id"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	KickoffAt time.Time `json:"kickoff_at"`
	Stage     string    `json:"stage"`
	Group     *string   `json:"group,omitempty"`
}

// Matches decodes the bundled schedule. Every fixture starts open and
// without a score.
func Matches() ([]models.Match, error) {
	var raw []fixture
	if err := json.Unmarshal(matchesJSON, &raw); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	matches := make([]models.Match, 0, len(raw))
	for _, f := range raw {
		stage := models.MatchStage(f.Stage)
		if !stage.Valid() {
			return nil, fmt.Errorf("fixture %s: unknown stage %q", f.ID, f.Stage)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("fixture %s: duplicate id", f.ID)
		}
		seen[f.ID] = true

		m := models.Match{
			ID:        f.ID,
			HomeTeam:  f.HomeTeam,
			AwayTeam:  f.AwayTeam,
			KickoffAt: f.KickoffAt,
			Stage:     stage,
			Group:     f.Group,
			Status:    models.MatchStatusOpen,
		}
		m.PopulateFlags()
		matches = append(matches, m)
	}
	if err := checkGroupRoundRobins(matches); err != nil {
		return nil, err
	}
	return matches, nil
}
