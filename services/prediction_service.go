package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
)

type PredictionService interface {
	// Save creates or replaces the user's prediction for a match. It is
	// rejected once the match is no longer open or has kicked off.
	Save(ctx context.Context, userEmail, matchID string, homeScore, awayScore int) (*models.Prediction, error)
	ListForUser(ctx context.Context, userEmail string) ([]models.Prediction, error)
}

type predictionService struct {
	predictionRepo repositories.PredictionRepository
	matchRepo      repositories.MatchRepository
	now            Clock
}

func NewPredictionService(predictionRepo repositories.PredictionRepository, matchRepo repositories.MatchRepository, now Clock) PredictionService {
	return &predictionService{
		predictionRepo: predictionRepo,
		matchRepo:      matchRepo,
		now:            orNow(now),
	}
}

func (s *predictionService) Save(ctx context.Context, userEmail, matchID string, homeScore, awayScore int) (*models.Prediction, error) {
	if !validScore(homeScore) || !validScore(awayScore) {
		return nil, ErrInvalidScore
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	if !match.AcceptsPredictions(s.now()) {
		return nil, ErrPredictionsClosed
	}

	prediction := &models.Prediction{
		UserEmail: userEmail,
		MatchID:   matchID,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}
	if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPredictionScoreInvalid):
			return nil, ErrInvalidScore
		case errors.Is(err, repositories.ErrPredictionReferenceInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return prediction, nil
}

func (s *predictionService) ListForUser(ctx context.Context, userEmail string) ([]models.Prediction, error) {
	predictions, err := s.predictionRepo.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions of %s: %w", userEmail, err)
	}
	return predictions, nil
}
