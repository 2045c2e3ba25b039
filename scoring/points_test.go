package scoring

import (
	"testing"

	"github.com/Manuelherrera22/Quinela/models"
)

func TestClassify(t *testing.T) {
	result := finished("m1", "A", "B", 2, 1, "X", 0)
	onlyAway := scheduled("m2", "A", "B", "X", 0)
	onlyAway.Status = models.MatchStatusFinished
	onlyAway.AwayScore = intPtr(1)

	tests := []struct {
		name  string
		pred  models.Prediction
		match *models.Match
		want  Verdict
	}{
		{"exact score", predict("u", "m1", 2, 1), &result, VerdictExact},
		{"same winner different score", predict("u", "m1", 3, 0), &result, VerdictOutcome},
		{"wrong outcome", predict("u", "m1", 0, 0), &result, VerdictMiss},
		{"missing match", predict("u", "zz", 2, 1), nil, VerdictPending},
		{"malformed score pair", predict("u", "m2", 0, 1), &onlyAway, VerdictPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEq(t, Classify(tt.pred, tt.match), tt.want)
		})
	}
}

func TestClassifyDrawOutcome(t *testing.T) {
	result := finished("m1", "A", "B", 1, 1, "X", 0)
	v := Classify(predict("u", "m1", 0, 0), &result)
	assertEq(t, v, VerdictOutcome)
	assertEq(t, v.Points(), CorrectOutcomePoints)
}

func TestClassifyIgnoresUnfinishedMatch(t *testing.T) {
	locked := scheduled("m1", "A", "B", "X", 0)
	locked.Status = models.MatchStatusLocked
	locked.HomeScore = intPtr(2)
	locked.AwayScore = intPtr(1)

	assertEq(t, Classify(predict("u", "m1", 2, 1), &locked), VerdictPending)
}

func TestComputeUserScores(t *testing.T) {
	matches := []models.Match{
		finished("m1", "A", "B", 2, 1, "X", 0),
		finished("m2", "C", "D", 0, 0, "X", 0),
		scheduled("m3", "A", "C", "X", 3),
	}
	users := []models.User{
		{Email: "ana@example.com", Name: "Ana", SelectedChampion: strPtr("Brazil")},
		{Email: "beto@example.com", Name: "Beto", SelectedChampion: strPtr("Argentina")},
		{Email: "caro@example.com", Name: "Caro"},
	}
	predictions := []models.Prediction{
		predict("ana@example.com", "m1", 2, 1),  // exact
		predict("ana@example.com", "m2", 1, 1),  // outcome
		predict("ana@example.com", "m3", 5, 0),  // pending
		predict("beto@example.com", "m1", 0, 3), // miss
		predict("beto@example.com", "gone", 1, 0),
		predict("nobody@example.com", "m1", 2, 1),
	}

	scores := ComputeUserScores(users, predictions, matches, strPtr("Brazil"))
	want := []UserScore{
		{Email: "ana@example.com", Points: 5 + 3 + 10, ExactMatches: 1},
		{Email: "beto@example.com", Points: 0, ExactMatches: 0},
		{Email: "caro@example.com", Points: 0, ExactMatches: 0},
	}
	assertEq(t, len(scores), len(want))
	for i := range want {
		assertEq(t, scores[i], want[i])
	}
}

func TestComputeUserScoresChampionBonus(t *testing.T) {
	users := []models.User{{Email: "u@example.com", SelectedChampion: strPtr("Brazil")}}

	tests := []struct {
		name     string
		champion *string
		want     int
	}{
		{"no champion set", nil, 0},
		{"matching pick", strPtr("Brazil"), ChampionBonusPoints},
		{"different champion", strPtr("France"), 0},
		{"case differs", strPtr("brazil"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := ComputeUserScores(users, nil, nil, tt.champion)
			assertEq(t, scores[0].Points, tt.want)
		})
	}
}

func TestComputeUserScoresIsIdempotent(t *testing.T) {
	matches := []models.Match{finished("m1", "A", "B", 1, 0, "X", 0)}
	users := []models.User{{Email: "u@example.com", Points: 99, ExactMatches: 7}}
	predictions := []models.Prediction{predict("u@example.com", "m1", 1, 0)}

	first := ComputeUserScores(users, predictions, matches, nil)
	second := ComputeUserScores(users, predictions, matches, nil)
	assertEq(t, first[0], second[0])
	assertEq(t, first[0].Points, ExactScorePoints)
	assertEq(t, first[0].ExactMatches, 1)
}
