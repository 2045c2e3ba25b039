package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/realtime"
	"github.com/Manuelherrera22/Quinela/repositories"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.TournamentSettings, error)
	// SetChampion declares (or clears, with "") the tournament champion and
	// then recomputes every user's totals. A failed recomputation is reported
	// in the outcome, not as an error.
	SetChampion(ctx context.Context, country string) (*ChampionOutcome, error)
}

type ChampionOutcome struct {
	Settings         *models.TournamentSettings
	Recalculation    *RecalculationResult
	RecalculationErr error
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	scoring      ScoringService
	broadcaster  Broadcaster
	logger       *slog.Logger
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, scoringService ScoringService, broadcaster Broadcaster, logger *slog.Logger) SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{
		settingsRepo: settingsRepo,
		scoring:      scoringService,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

func (s *settingsService) Get(ctx context.Context) (*models.TournamentSettings, error) {
	champion, err := s.settingsRepo.GetChampion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return &models.TournamentSettings{Champion: champion}, nil
}

func (s *settingsService) SetChampion(ctx context.Context, country string) (*ChampionOutcome, error) {
	var champion *string
	if country = strings.TrimSpace(country); country != "" {
		if !models.IsKnownCountry(country) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
		}
		champion = &country
	}

	if err := s.settingsRepo.SetChampion(ctx, champion); err != nil {
		return nil, fmt.Errorf("failed to set champion: %w", err)
	}
	settings := &models.TournamentSettings{Champion: champion}
	s.logger.InfoContext(ctx, "champion setting updated", slog.String("champion", derefString(champion)))
	if s.broadcaster != nil {
		s.broadcaster.Publish(realtime.RoomLeaderboard, realtime.EventChampionUpdated, settings)
	}

	outcome := &ChampionOutcome{Settings: settings}
	outcome.Recalculation, outcome.RecalculationErr = s.scoring.Recalculate(ctx)
	if outcome.RecalculationErr != nil {
		s.logger.WarnContext(ctx, "champion saved but score recalculation failed", slog.Any("error", outcome.RecalculationErr))
	}
	return outcome, nil
}
