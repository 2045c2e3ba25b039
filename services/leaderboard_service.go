package services

import (
	"context"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/repositories"
	"github.com/Manuelherrera22/Quinela/scoring"
	"github.com/Manuelherrera22/Quinela/storage"
)

type LeaderboardScope string

const (
	ScopeGlobal LeaderboardScope = "global"
	ScopeLocal  LeaderboardScope = "local"
)

type LeaderboardService interface {
	// Leaderboard ranks all users, or with ScopeLocal only those sharing the
	// viewer's country.
	Leaderboard(ctx context.Context, scope LeaderboardScope, viewerEmail string) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewLeaderboardService(userRepo repositories.UserRepository, uploader storage.FileUploader) LeaderboardService {
	return &leaderboardService{userRepo: userRepo, uploader: uploader}
}

func (s *leaderboardService) Leaderboard(ctx context.Context, scope LeaderboardScope, viewerEmail string) ([]models.LeaderboardEntry, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	populateUserListDetails(users, s.uploader)

	var country string
	switch scope {
	case ScopeGlobal, "":
	case ScopeLocal:
		for _, u := range users {
			if u.Email == viewerEmail {
				country = u.Country
				break
			}
		}
		if country == "" {
			return nil, ErrUserNotFound
		}
	default:
		return nil, fmt.Errorf("%w: scope %q", ErrInvalidFilter, scope)
	}

	return scoring.RankLeaderboard(users, country), nil
}
