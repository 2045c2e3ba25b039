package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/realtime"
	"github.com/Manuelherrera22/Quinela/repositories"
)

func TestRecordResultRecalculates(t *testing.T) {
	f := newScoringFixture()
	svc := NewMatchService(f.matches, f.service, f.broadcaster, f.recorder, nil, fixedClock)

	outcome, err := svc.RecordResult(context.Background(), "m3", 3, 0)
	if err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}
	if outcome.Match.Status != models.MatchStatusFinished {
		t.Errorf("status = %s, want finished", outcome.Match.Status)
	}
	if outcome.RecalculationErr != nil {
		t.Errorf("RecalculationErr = %v", outcome.RecalculationErr)
	}
	// m3 was predicted exactly by ana.
	if got := f.users.get("ana@example.com").Points; got != 13 {
		t.Errorf("ana points = %d, want 13", got)
	}

	events := f.broadcaster.types()
	want := []string{realtime.EventMatchUpdated, realtime.EventScoresRecalculated}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("published %v, want %v", events, want)
	}
}

func TestRecordResultCorrection(t *testing.T) {
	f := newScoringFixture()
	svc := NewMatchService(f.matches, f.service, nil, nil, nil, fixedClock)
	ctx := context.Background()

	if _, err := svc.RecordResult(ctx, "m1", 2, 1); err != nil {
		t.Fatalf("RecordResult() error = %v", err)
	}
	if _, err := svc.RecordResult(ctx, "m1", 0, 1); err != nil {
		t.Fatalf("RecordResult() correction error = %v", err)
	}
	if got := f.users.get("beto@example.com"); got.Points != 5 || got.ExactMatches != 1 {
		t.Errorf("beto = %d / %d after correction, want 5 / 1", got.Points, got.ExactMatches)
	}
	if got := f.users.get("ana@example.com").ExactMatches; got != 0 {
		t.Errorf("ana exact = %d after correction, want 0", got)
	}
}

func TestRecordResultToleratesRecalculationFailure(t *testing.T) {
	matches := newMemMatchRepo(groupMatch("m1", "Mexico", "Canada", "A", testNow))
	scoring := &stubScoring{err: ErrScoringInputUnavailable}
	svc := NewMatchService(matches, scoring, nil, nil, nil, fixedClock)

	outcome, err := svc.RecordResult(context.Background(), "m1", 1, 1)
	if err != nil {
		t.Fatalf("RecordResult() error = %v, want result saved", err)
	}
	if !errors.Is(outcome.RecalculationErr, ErrScoringInputUnavailable) {
		t.Errorf("RecalculationErr = %v", outcome.RecalculationErr)
	}
	if scoring.calls != 1 {
		t.Errorf("recalculations = %d, want 1", scoring.calls)
	}
	if got := matches.status("m1"); got != models.MatchStatusFinished {
		t.Errorf("status = %s, want finished", got)
	}
}

func TestRecordResultValidation(t *testing.T) {
	matches := newMemMatchRepo(groupMatch("m1", "Mexico", "Canada", "A", testNow))
	scoring := &stubScoring{}
	svc := NewMatchService(matches, scoring, nil, nil, nil, fixedClock)
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		home, away int
		want       error
	}{
		{"negative", "m1", -1, 0, ErrInvalidScore},
		{"too large", "m1", 2, 100, ErrInvalidScore},
		{"unknown match", "zz", 1, 0, ErrMatchNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordResult(ctx, tt.id, tt.home, tt.away); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if scoring.calls != 0 {
		t.Errorf("recalculations = %d, want 0 for rejected results", scoring.calls)
	}
}

func TestLockStartedMatches(t *testing.T) {
	matches := newMemMatchRepo(
		groupMatch("past", "Mexico", "Canada", "A", testNow.Add(-time.Minute)),
		groupMatch("now", "Spain", "Egypt", "C", testNow),
		groupMatch("later", "Brazil", "Japan", "B", testNow.Add(time.Hour)),
	)
	b := &recordingBroadcaster{}
	svc := NewMatchService(matches, &stubScoring{}, b, nil, nil, fixedClock)

	n, err := svc.LockStartedMatches(context.Background())
	if err != nil {
		t.Fatalf("LockStartedMatches() error = %v", err)
	}
	if n != 2 {
		t.Errorf("locked = %d, want 2", n)
	}
	if matches.status("later") != models.MatchStatusOpen {
		t.Errorf("future match was locked")
	}
	if got := b.types(); len(got) != 1 || got[0] != realtime.EventMatchUpdated {
		t.Errorf("published %v", got)
	}

	if n, _ := svc.LockStartedMatches(context.Background()); n != 0 {
		t.Errorf("second run locked %d, want 0", n)
	}
}

func TestListMatchesRejectsUnknownFilter(t *testing.T) {
	svc := NewMatchService(newMemMatchRepo(), &stubScoring{}, nil, nil, nil, fixedClock)
	stage := models.MatchStage("playoffs")
	if _, err := svc.ListMatches(context.Background(), repositories.MatchFilter{Stage: &stage}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("error = %v, want ErrInvalidFilter", err)
	}
	status := models.MatchStatus("cancelled")
	if _, err := svc.ListMatches(context.Background(), repositories.MatchFilter{Status: &status}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("error = %v, want ErrInvalidFilter", err)
	}
}

func TestGroupStandings(t *testing.T) {
	matches := newMemMatchRepo(
		finishedMatch("a1", "Mexico", "Canada", "A", 2, 0),
		finishedMatch("a2", "Canada", "Jamaica", "A", 1, 1),
		finishedMatch("b1", "Brazil", "Japan", "B", 5, 0),
	)
	svc := NewMatchService(matches, &stubScoring{}, nil, nil, nil, fixedClock)

	table, err := svc.GroupStandings(context.Background(), "A")
	if err != nil {
		t.Fatalf("GroupStandings() error = %v", err)
	}
	if len(table) != 3 || table[0].Team != "Mexico" || table[0].Points != 3 {
		t.Errorf("table = %+v", table)
	}

	for _, group := range []string{"C", "Z"} {
		empty, err := svc.GroupStandings(context.Background(), group)
		if err != nil {
			t.Fatalf("GroupStandings(%q) error = %v", group, err)
		}
		if empty == nil || len(empty) != 0 {
			t.Errorf("GroupStandings(%q) = %#v, want empty table", group, empty)
		}
	}

	all, err := svc.AllStandings(context.Background())
	if err != nil {
		t.Fatalf("AllStandings() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("groups = %d, want 2", len(all))
	}
}
