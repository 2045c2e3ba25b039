package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Manuelherrera22/Quinela/metrics"
	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/realtime"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/scoring"
)

type MatchService interface {
	ListMatches(ctx context.Context, filter repositories.MatchFilter) ([]models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
	GroupStandings(ctx context.Context, group string) ([]models.TeamStats, error)
	AllStandings(ctx context.Context) ([]models.GroupStandings, error)
	// RecordResult stores a final score (or corrects one) and then recomputes
	// every user's totals. A failed recomputation does not fail the call; it
	// is reported in the outcome.
	RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (*ResultOutcome, error)
	LockStartedMatches(ctx context.Context) (int64, error)
}

type ResultOutcome struct {
	Match            *models.Match
	Recalculation    *RecalculationResult
	RecalculationErr error
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	scoring     ScoringService
	broadcaster Broadcaster
	metrics     *metrics.Recorder
	logger      *slog.Logger
	now         Clock
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	scoringService ScoringService,
	broadcaster Broadcaster,
	recorder *metrics.Recorder,
	logger *slog.Logger,
	now Clock,
) MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &matchService{
		matchRepo:   matchRepo,
		scoring:     scoringService,
		broadcaster: broadcaster,
		metrics:     recorder,
		logger:      logger,
		now:         orNow(now),
	}
}

func (s *matchService) ListMatches(ctx context.Context, filter repositories.MatchFilter) ([]models.Match, error) {
	if filter.Stage != nil && !filter.Stage.Valid() {
		return nil, fmt.Errorf("%w: stage %q", ErrInvalidFilter, *filter.Stage)
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, *filter.Status)
	}
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) GetMatch(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return match, nil
}

// GroupStandings returns an empty table for a group label with no matches.
func (s *matchService) GroupStandings(ctx context.Context, group string) ([]models.TeamStats, error) {
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{Group: &group})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches of group %s: %w", group, err)
	}
	return scoring.CalculateGroupStandings(matches, group), nil
}

func (s *matchService) AllStandings(ctx context.Context) ([]models.GroupStandings, error) {
	stage := models.StageGroup
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{Stage: &stage})
	if err != nil {
		return nil, fmt.Errorf("failed to list group matches: %w", err)
	}
	return scoring.AllGroupStandings(matches), nil
}

func (s *matchService) RecordResult(ctx context.Context, matchID string, homeScore, awayScore int) (*ResultOutcome, error) {
	if !validScore(homeScore) || !validScore(awayScore) {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.UpdateResult(ctx, matchID, homeScore, awayScore)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchScoreInvalid):
			return nil, ErrInvalidScore
		}
		return nil, fmt.Errorf("failed to record result of match %s: %w", matchID, err)
	}
	s.logger.InfoContext(ctx, "match result recorded",
		slog.String("match_id", match.ID),
		slog.Int("home_score", homeScore),
		slog.Int("away_score", awayScore),
	)
	if s.broadcaster != nil {
		s.broadcaster.Publish(realtime.RoomMatches, realtime.EventMatchUpdated, match)
	}

	outcome := &ResultOutcome{Match: match}
	outcome.Recalculation, outcome.RecalculationErr = s.scoring.Recalculate(ctx)
	if outcome.RecalculationErr != nil {
		s.logger.WarnContext(ctx, "result saved but score recalculation failed",
			slog.String("match_id", match.ID),
			slog.Any("error", outcome.RecalculationErr),
		)
	}
	return outcome, nil
}

// LockStartedMatches closes predictions on every open match that has kicked off.
func (s *matchService) LockStartedMatches(ctx context.Context) (int64, error) {
	n, err := s.matchRepo.LockStarted(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to lock started matches: %w", err)
	}
	if n > 0 {
		s.metrics.RecordMatchesLocked(n)
		s.logger.InfoContext(ctx, "matches locked", slog.Int64("count", n))
		if s.broadcaster != nil {
			s.broadcaster.Publish(realtime.RoomMatches, realtime.EventMatchUpdated, map[string]int64{"locked": n})
		}
	}
	return n, nil
}
