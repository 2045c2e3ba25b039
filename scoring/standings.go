package scoring

import (
	"sort"

	"github.com/Manuelherrera22/Quinela/models"
)

// CalculateGroupStandings builds the table for one group. Every team named in
// a fixture of the group is listed, played or not; only finished matches with
// both scores count. Rows are ordered by points, goal difference, goals for,
// then team name. Head-to-head is not applied.
func CalculateGroupStandings(matches []models.Match, group string) []models.TeamStats {
	index := make(map[string]*models.TeamStats)
	order := make([]string, 0)
	entry := func(team string) *models.TeamStats {
		if s, ok := index[team]; ok {
			return s
		}
		s := &models.TeamStats{Team: team, Flag: models.FlagCode(team)}
		index[team] = s
		order = append(order, team)
		return s
	}

	for i := range matches {
		m := &matches[i]
		if !m.InGroup(group) {
			continue
		}
		home := entry(m.HomeTeam)
		away := entry(m.AwayTeam)

		homeGoals, awayGoals, ok := m.Result()
		if !ok {
			continue
		}
		applyResult(home, homeGoals, awayGoals)
		applyResult(away, awayGoals, homeGoals)
	}

	table := make([]models.TeamStats, 0, len(order))
	for _, team := range order {
		table = append(table, *index[team])
	}
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return table
}

func applyResult(s *models.TeamStats, scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	s.GoalDifference = s.GoalsFor - s.GoalsAgainst
	switch OutcomeOf(scored, conceded) {
	case HomeWin:
		s.Won++
		s.Points += 3
	case Draw:
		s.Drawn++
		s.Points++
	default:
		s.Lost++
	}
}

// GroupLabels returns the distinct group labels present in matches, sorted.
func GroupLabels(matches []models.Match) []string {
	seen := make(map[string]bool)
	labels := make([]string, 0)
	for _, m := range matches {
		if m.Group == nil || *m.Group == "" || seen[*m.Group] {
			continue
		}
		seen[*m.Group] = true
		labels = append(labels, *m.Group)
	}
	sort.Strings(labels)
	return labels
}

// AllGroupStandings computes one table per group label found in matches.
func AllGroupStandings(matches []models.Match) []models.GroupStandings {
	labels := GroupLabels(matches)
	out := make([]models.GroupStandings, 0, len(labels))
	for _, g := range labels {
		out = append(out, models.GroupStandings{Group: g, Table: CalculateGroupStandings(matches, g)})
	}
	return out
}
