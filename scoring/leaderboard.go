package scoring

import (
	"sort"

	"github.com/Manuelherrera22/Quinela/models"
)

// RankLeaderboard orders users by points, then exact matches, then name, and
// assigns 1-based positions. A non-empty country keeps only users from it.
// Equal rows still get distinct ranks: the final tie-break of the published
// rules is a random draw, which is not performed here.
func RankLeaderboard(users []models.User, country string) []models.LeaderboardEntry {
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if country != "" && u.Country != country {
			continue
		}
		filtered = append(filtered, u)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ExactMatches != b.ExactMatches {
			return a.ExactMatches > b.ExactMatches
		}
		return a.Name < b.Name
	})

	entries := make([]models.LeaderboardEntry, len(filtered))
	for i, u := range filtered {
		entries[i] = models.LeaderboardEntry{
			Rank:         i + 1,
			Email:        u.Email,
			Name:         u.Name,
			Country:      u.Country,
			AvatarURL:    u.AvatarURL,
			Points:       u.Points,
			ExactMatches: u.ExactMatches,
		}
	}
	return entries
}
