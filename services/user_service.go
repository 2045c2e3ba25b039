package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/scoring"
	"github.com/Manuelherrera22/Quinela/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type UserService interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
	UploadAvatar(ctx context.Context, email string, file io.Reader, contentType string, size int64) (*models.User, error)
	// SelectChampion records the user's champion pick until the champion lock
	// time. It does not trigger a recalculation; the pick counts from the next one.
	SelectChampion(ctx context.Context, email, country string) (*models.User, error)
	ChampionLockTime(ctx context.Context) (*time.Time, error)
	Stats(ctx context.Context, email string) (*models.PredictionStats, error)
}

type userService struct {
	userRepo       repositories.UserRepository
	matchRepo      repositories.MatchRepository
	predictionRepo repositories.PredictionRepository
	uploader       storage.FileUploader
	championLockAt *time.Time
	logger         *slog.Logger
	now            Clock
}

// NewUserService builds the profile service. uploader may be nil, in which
// case avatar uploads fail with ErrAvatarStorageDisabled. championLockAt
// overrides the earliest kickoff as the moment champion picks close.
func NewUserService(
	userRepo repositories.UserRepository,
	matchRepo repositories.MatchRepository,
	predictionRepo repositories.PredictionRepository,
	uploader storage.FileUploader,
	championLockAt *time.Time,
	logger *slog.Logger,
	now Clock,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{
		userRepo:       userRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		uploader:       uploader,
		championLockAt: championLockAt,
		logger:         logger,
		now:            orNow(now),
	}
}

func (s *userService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", email, err)
	}
	populateUserDetails(user, s.uploader)
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, email string, file io.Reader, contentType string, size int64) (*models.User, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorageDisabled
	}
	if size <= 0 || size > MaxAvatarBytes {
		return nil, fmt.Errorf("%w: size %d bytes", ErrAvatarInvalid, size)
	}
	ext, err := extensionForAvatar(contentType)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", email, err)
	}
	oldKey := user.AvatarKey

	key := avatarKeyPrefix + uuid.NewString() + ext
	if _, err := s.uploader.Upload(ctx, key, contentType, file, size); err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, email, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned avatar", slog.String("key", key), slog.Any("error", delErr))
		}
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save avatar for %s: %w", email, err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous avatar", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	user.AvatarKey = &key
	populateUserDetails(user, s.uploader)
	return user, nil
}

func (s *userService) ChampionLockTime(ctx context.Context) (*time.Time, error) {
	if s.championLockAt != nil {
		return s.championLockAt, nil
	}
	earliest, err := s.matchRepo.EarliestKickoff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve champion lock time: %w", err)
	}
	return earliest, nil
}

func (s *userService) SelectChampion(ctx context.Context, email, country string) (*models.User, error) {
	if !models.IsKnownCountry(country) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	lockAt, err := s.ChampionLockTime(ctx)
	if err != nil {
		return nil, err
	}
	if lockAt != nil && !s.now().Before(*lockAt) {
		return nil, ErrChampionLocked
	}

	if err := s.userRepo.UpdateSelectedChampion(ctx, email, &country); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save champion pick: %w", err)
	}
	return s.GetProfile(ctx, email)
}

func (s *userService) Stats(ctx context.Context, email string) (*models.PredictionStats, error) {
	var (
		user        *models.User
		predictions []models.Prediction
		matches     []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.GetProfile(gctx, email)
		return err
	})
	g.Go(func() error {
		var err error
		if predictions, err = s.predictionRepo.ListByUser(gctx, email); err != nil {
			return fmt.Errorf("failed to list predictions of %s: %w", email, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if matches, err = s.matchRepo.List(gctx, repositories.MatchFilter{}); err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := scoring.SummarizePredictions(predictions, matches)
	stats.Points = user.Points
	stats.ExactMatches = user.ExactMatches
	return &stats, nil
}
