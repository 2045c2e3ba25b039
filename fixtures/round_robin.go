package fixtures

import (
	"fmt"
	"sort"

	"github.com/Manuelherrera22/Quinela/models"
)

type pairing struct {
	home, away string
}

// roundRobinPairings lists every meeting of a single round robin: each team
// plays each other team once, in input order.
func roundRobinPairings(teams []string) []pairing {
	pairings := make([]pairing, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, pairing{home: teams[i], away: teams[j]})
		}
	}
	return pairings
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

// checkGroupRoundRobins verifies that the group stage of every group is
// exactly one round robin among its teams, so standings tables are complete.
func checkGroupRoundRobins(matches []models.Match) error {
	teamsByGroup := make(map[string]map[string]bool)
	played := make(map[string]map[string]int)
	for _, m := range matches {
		if m.Stage != models.StageGroup {
			continue
		}
		if m.Group == nil || !models.IsKnownGroup(*m.Group) {
			return fmt.Errorf("fixture %s: group stage match without a valid group", m.ID)
		}
		g := *m.Group
		if teamsByGroup[g] == nil {
			teamsByGroup[g] = make(map[string]bool)
			played[g] = make(map[string]int)
		}
		teamsByGroup[g][m.HomeTeam] = true
		teamsByGroup[g][m.AwayTeam] = true
		played[g][pairKey(m.HomeTeam, m.AwayTeam)]++
	}

	for g, set := range teamsByGroup {
		teams := make([]string, 0, len(set))
		for t := range set {
			teams = append(teams, t)
		}
		sort.Strings(teams)

		expected := roundRobinPairings(teams)
		if len(played[g]) != len(expected) {
			return fmt.Errorf("group %s: %d distinct pairings, want %d for %d teams", g, len(played[g]), len(expected), len(teams))
		}
		for _, p := range expected {
			if n := played[g][pairKey(p.home, p.away)]; n != 1 {
				return fmt.Errorf("group %s: %s vs %s scheduled %d times", g, p.home, p.away, n)
			}
		}
	}
	return nil
}
