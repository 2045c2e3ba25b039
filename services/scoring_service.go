package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Manuelherrera22/Quinela/metrics"
	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/realtime"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/scoring"
	"golang.org/x/sync/errgroup"
)

// Broadcaster delivers change notifications to connected clients.
type Broadcaster interface {
	Publish(room, eventType string, payload interface{})
}

type ScoringService interface {
	// Recalculate recomputes every user's totals from the current matches,
	// predictions and champion setting and writes them back. When any input
	// cannot be read nothing is written and the error wraps
	// ErrScoringInputUnavailable. When some writes fail the others still
	// happen, the result is returned and the error wraps ErrScoringPartialWrite.
	Recalculate(ctx context.Context) (*RecalculationResult, error)
}

type RecalculationResult struct {
	Scores   []scoring.UserScore `json:"scores"`
	Failed   []string            `json:"failed,omitempty"`
	Champion *string             `json:"champion"`
	Duration time.Duration       `json:"-"`
}

// ScoreFor returns the recomputed totals of one user.
func (r *RecalculationResult) ScoreFor(email string) (scoring.UserScore, bool) {
	if r == nil {
		return scoring.UserScore{}, false
	}
	for _, s := range r.Scores {
		if s.Email == email {
			return s, true
		}
	}
	return scoring.UserScore{}, false
}

type scoringService struct {
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	userRepo       repositories.UserRepository
	settingsRepo   repositories.SettingsRepository
	broadcaster    Broadcaster
	metrics        *metrics.Recorder
	logger         *slog.Logger

	// serializes recalculations
	mu sync.Mutex
}

func NewScoringService(
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	userRepo repositories.UserRepository,
	settingsRepo repositories.SettingsRepository,
	broadcaster Broadcaster,
	recorder *metrics.Recorder,
	logger *slog.Logger,
) ScoringService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scoringService{
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		settingsRepo:   settingsRepo,
		broadcaster:    broadcaster,
		metrics:        recorder,
		logger:         logger,
	}
}

func (s *scoringService) Recalculate(ctx context.Context) (*RecalculationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	var (
		matches     []models.Match
		predictions []models.Prediction
		users       []models.User
		champion    *string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if matches, err = s.matchRepo.List(gctx, repositories.MatchFilter{}); err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if predictions, err = s.predictionRepo.ListAll(gctx); err != nil {
			return fmt.Errorf("list predictions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if users, err = s.userRepo.List(gctx); err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if champion, err = s.settingsRepo.GetChampion(gctx); err != nil {
			return fmt.Errorf("read champion setting: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.RecordRecalculation(metrics.ResultAborted, time.Since(start), 0)
		s.logger.ErrorContext(ctx, "score recalculation aborted before writing", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrScoringInputUnavailable, err)
	}

	result := &RecalculationResult{
		Scores:   scoring.ComputeUserScores(users, predictions, matches, champion),
		Champion: champion,
	}

	var writeErrs []error
	for _, score := range result.Scores {
		if err := s.userRepo.UpdateScore(ctx, score.Email, score.Points, score.ExactMatches); err != nil {
			writeErrs = append(writeErrs, fmt.Errorf("%s: %w", score.Email, err))
			result.Failed = append(result.Failed, score.Email)
		}
	}
	result.Duration = time.Since(start)

	if s.broadcaster != nil {
		s.broadcaster.Publish(realtime.RoomLeaderboard, realtime.EventScoresRecalculated, result)
	}

	if len(writeErrs) > 0 {
		s.metrics.RecordRecalculation(metrics.ResultPartial, result.Duration, len(writeErrs))
		s.logger.ErrorContext(ctx, "score recalculation finished with failed writes",
			slog.Int("users", len(result.Scores)),
			slog.Int("failed", len(writeErrs)),
			slog.Any("error", errors.Join(writeErrs...)),
		)
		return result, fmt.Errorf("%w: %d of %d users: %w", ErrScoringPartialWrite, len(writeErrs), len(result.Scores), errors.Join(writeErrs...))
	}

	s.metrics.RecordRecalculation(metrics.ResultOK, result.Duration, 0)
	s.logger.InfoContext(ctx, "score recalculation complete",
		slog.Int("users", len(result.Scores)),
		slog.Int("matches", len(matches)),
		slog.Int("predictions", len(predictions)),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}
