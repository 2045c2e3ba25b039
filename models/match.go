package models

import "time"

type MatchStatus string

const (
	MatchStatusOpen     MatchStatus = "open"
	MatchStatusLocked   MatchStatus = "locked"
	MatchStatusFinished MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusOpen, MatchStatusLocked, MatchStatusFinished:
		return true
	}
	return false
}

type MatchStage string

const (
	StageGroup      MatchStage = "group"
	StageRoundOf32  MatchStage = "r32"
	StageRoundOf16  MatchStage = "r16"
	StageQuarter    MatchStage = "qf"
	StageSemi       MatchStage = "sf"
	StageThirdPlace MatchStage = "3p"
	StageFinal      MatchStage = "f"
)

func (s MatchStage) Valid() bool {
	switch s {
	case StageGroup, StageRoundOf32, StageRoundOf16, StageQuarter, StageSemi, StageThirdPlace, StageFinal:
		return true
	}
	return false
}

type Match struct {
	ID        string      `json:"id"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	HomeFlag  string      `json:"home_flag,omitempty"`
	AwayFlag  string      `json:"away_flag,omitempty"`
	KickoffAt time.Time   `json:"kickoff_at"`
	Stage     MatchStage  `json:"stage"`
	Group     *string     `json:"group,omitempty"`
	Status    MatchStatus `json:"status"`
	HomeScore *int        `json:"home_score,omitempty"`
	AwayScore *int        `json:"away_score,omitempty"`
}

// Result returns the final score. ok is false unless the match is finished
// and both sides have a recorded score.
func (m *Match) Result() (home, away int, ok bool) {
	if m == nil || m.Status != MatchStatusFinished || m.HomeScore == nil || m.AwayScore == nil {
		return 0, 0, false
	}
	return *m.HomeScore, *m.AwayScore, true
}

func (m *Match) InGroup(group string) bool {
	return m != nil && m.Group != nil && *m.Group == group
}

// AcceptsPredictions reports whether a prediction may still be created or
// changed at the given instant.
func (m *Match) AcceptsPredictions(now time.Time) bool {
	return m != nil && m.Status == MatchStatusOpen && now.Before(m.KickoffAt)
}

func (m *Match) PopulateFlags() {
	if m == nil {
		return
	}
	m.HomeFlag = FlagCode(m.HomeTeam)
	m.AwayFlag = FlagCode(m.AwayTeam)
}
