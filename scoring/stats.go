package scoring

import (
	"math"
	"sort"

	"github.com/Manuelherrera22/Quinela/models"
)

// SummarizePredictions reports one user's record. predictions must belong to
// that user; matches is the full fixture list. Points and ExactMatches are
// left for the caller to copy from the stored user.
func SummarizePredictions(predictions []models.Prediction, matches []models.Match) models.PredictionStats {
	var stats models.PredictionStats

	matchByID := make(map[string]*models.Match, len(matches))
	for i := range matches {
		m := &matches[i]
		matchByID[m.ID] = m
		if _, _, ok := m.Result(); ok {
			stats.TotalFinished++
		} else if m.Status == models.MatchStatusOpen {
			stats.OpenCount++
		}
	}

	predicted := make(map[string]bool, len(predictions))
	settled := make([]models.Prediction, 0, len(predictions))
	for _, p := range predictions {
		predicted[p.MatchID] = true
		m := matchByID[p.MatchID]
		// a finished match without both scores is not settled
		if _, _, ok := m.Result(); !ok {
			continue
		}
		settled = append(settled, p)
		switch Classify(p, m) {
		case VerdictExact:
			stats.Exact++
		case VerdictOutcome:
			stats.Correct++
		case VerdictMiss:
			stats.Missed++
		}
	}
	stats.TotalPredicted = len(settled)

	if stats.TotalPredicted > 0 {
		stats.Accuracy = percent(stats.Exact+stats.Correct, stats.TotalPredicted)
		stats.ExactPct = percent(stats.Exact, stats.TotalPredicted)
	}

	// most recent kickoff first
	sort.SliceStable(settled, func(i, j int) bool {
		return matchByID[settled[i].MatchID].KickoffAt.After(matchByID[settled[j].MatchID].KickoffAt)
	})
	for _, p := range settled {
		v := Classify(p, matchByID[p.MatchID])
		if v != VerdictExact && v != VerdictOutcome {
			break
		}
		stats.CurrentStreak++
	}

	for i := range matches {
		if matches[i].Status == models.MatchStatusOpen && !predicted[matches[i].ID] {
			stats.UnpredictedCount++
		}
	}
	return stats
}

func percent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
