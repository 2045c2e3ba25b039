package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
)

func newUserServiceFixture(uploader *memUploader, lockAt *time.Time) (UserService, *memUserRepo, *memMatchRepo, *memPredictionRepo) {
	users := newMemUserRepo(models.User{Email: "ana@example.com", Name: "Ana", Country: "Mexico", Points: 8, ExactMatches: 1})
	matches := newMemMatchRepo(
		finishedMatch("m1", "Mexico", "Canada", "A", 2, 1),
		finishedMatch("m2", "Brazil", "Japan", "B", 0, 0),
		groupMatch("m3", "Spain", "Egypt", "C", testNow.Add(24*time.Hour)),
	)
	predictions := newMemPredictionRepo(
		models.Prediction{UserEmail: "ana@example.com", MatchID: "m1", HomeScore: 2, AwayScore: 1},
		models.Prediction{UserEmail: "ana@example.com", MatchID: "m2", HomeScore: 1, AwayScore: 1},
	)
	var u UserService
	if uploader == nil {
		u = NewUserService(users, matches, predictions, nil, lockAt, nil, fixedClock)
	} else {
		u = NewUserService(users, matches, predictions, uploader, lockAt, nil, fixedClock)
	}
	return u, users, matches, predictions
}

func TestSelectChampion(t *testing.T) {
	future := testNow.Add(time.Hour)
	past := testNow.Add(-time.Hour)

	tests := []struct {
		name    string
		lockAt  *time.Time
		country string
		want    error
	}{
		{"before lock", &future, "Argentina", nil},
		{"after lock", &past, "Argentina", ErrChampionLocked},
		{"exactly at lock", &testNow, "Argentina", ErrChampionLocked},
		{"unknown country", &future, "Atlantis", ErrUnknownCountry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _, _ := newUserServiceFixture(nil, tt.lockAt)
			user, err := svc.SelectChampion(context.Background(), "ana@example.com", tt.country)
			if !errors.Is(err, tt.want) {
				t.Fatalf("SelectChampion() error = %v, want %v", err, tt.want)
			}
			if tt.want != nil {
				if users.get("ana@example.com").SelectedChampion != nil {
					t.Errorf("pick stored despite rejection")
				}
				return
			}
			if user.SelectedChampion == nil || *user.SelectedChampion != tt.country {
				t.Errorf("SelectedChampion = %v, want %s", user.SelectedChampion, tt.country)
			}
		})
	}
}

func TestChampionLockDefaultsToFirstKickoff(t *testing.T) {
	svc, _, _, _ := newUserServiceFixture(nil, nil)

	lockAt, err := svc.ChampionLockTime(context.Background())
	if err != nil {
		t.Fatalf("ChampionLockTime() error = %v", err)
	}
	want := testNow.Add(-48 * time.Hour)
	if lockAt == nil || !lockAt.Equal(want) {
		t.Errorf("lock time = %v, want %v", lockAt, want)
	}
	if _, err := svc.SelectChampion(context.Background(), "ana@example.com", "Brazil"); !errors.Is(err, ErrChampionLocked) {
		t.Errorf("error = %v, want ErrChampionLocked once the tournament started", err)
	}
}

func TestUploadAvatar(t *testing.T) {
	uploader := newMemUploader()
	svc, users, _, _ := newUserServiceFixture(uploader, nil)
	ctx := context.Background()

	user, err := svc.UploadAvatar(ctx, "ana@example.com", strings.NewReader("png-bytes"), "image/png", 9)
	if err != nil {
		t.Fatalf("UploadAvatar() error = %v", err)
	}
	firstKey := *users.get("ana@example.com").AvatarKey
	if !strings.HasPrefix(firstKey, "avatars/") || !strings.HasSuffix(firstKey, ".png") {
		t.Errorf("key = %q, want avatars/<uuid>.png", firstKey)
	}
	if user.AvatarURL == nil || *user.AvatarURL != uploader.GetPublicURL(firstKey) {
		t.Errorf("AvatarURL = %v", user.AvatarURL)
	}
	if user.PasswordHash != "" {
		t.Errorf("password hash leaked")
	}
	if got := uploader.sizes[firstKey]; got != 9 {
		t.Errorf("uploaded size = %d, want 9", got)
	}

	if _, err := svc.UploadAvatar(ctx, "ana@example.com", strings.NewReader("jpeg"), "image/jpeg", 4); err != nil {
		t.Fatalf("second UploadAvatar() error = %v", err)
	}
	if _, ok := uploader.objects[firstKey]; ok {
		t.Errorf("previous avatar %s was not deleted", firstKey)
	}
	if len(uploader.objects) != 1 {
		t.Errorf("stored objects = %d, want 1", len(uploader.objects))
	}
}

func TestUploadAvatarRejects(t *testing.T) {
	tests := []struct {
		name        string
		uploader    *memUploader
		contentType string
		size        int64
		want        error
	}{
		{"storage disabled", nil, "image/png", 10, ErrAvatarStorageDisabled},
		{"too large", newMemUploader(), "image/png", MaxAvatarBytes + 1, ErrAvatarInvalid},
		{"empty", newMemUploader(), "image/png", 0, ErrAvatarInvalid},
		{"not an image", newMemUploader(), "application/pdf", 10, ErrAvatarInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newUserServiceFixture(tt.uploader, nil)
			_, err := svc.UploadAvatar(context.Background(), "ana@example.com", strings.NewReader("x"), tt.contentType, tt.size)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUploadAvatarUnknownUserLeavesNoObject(t *testing.T) {
	uploader := newMemUploader()
	svc, _, _, _ := newUserServiceFixture(uploader, nil)

	_, err := svc.UploadAvatar(context.Background(), "ghost@example.com", strings.NewReader("x"), "image/png", 1)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("error = %v, want ErrUserNotFound", err)
	}
	if len(uploader.objects) != 0 {
		t.Errorf("objects = %v, want none", uploader.objects)
	}
}

func TestStats(t *testing.T) {
	svc, _, _, _ := newUserServiceFixture(nil, nil)

	stats, err := svc.Stats(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalFinished != 2 || stats.Exact != 1 || stats.Correct != 1 || stats.Missed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Points != 8 || stats.ExactMatches != 1 {
		t.Errorf("totals = %d / %d, want stored 8 / 1", stats.Points, stats.ExactMatches)
	}
	if stats.OpenCount != 1 {
		t.Errorf("OpenCount = %d, want 1", stats.OpenCount)
	}

	if _, err := svc.Stats(context.Background(), "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
