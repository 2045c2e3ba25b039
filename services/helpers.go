package services

import (
	"fmt"
	"time"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/Manuelherrera22/Quinela/storage"
)

const (
	maxScore        = 99
	MaxAvatarBytes  = 5 << 20
	avatarKeyPrefix = "avatars/"
)

type Clock func() time.Time

func orNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func validScore(v int) bool {
	return v >= 0 && v <= maxScore
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// populateUserDetails strips the password hash and resolves the public avatar URL.
func populateUserDetails(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.AvatarKey != nil && *user.AvatarKey != "" && uploader != nil {
		if url := uploader.GetPublicURL(*user.AvatarKey); url != "" {
			user.AvatarURL = &url
		}
	}
}

func populateUserListDetails(users []models.User, uploader storage.FileUploader) {
	for i := range users {
		populateUserDetails(&users[i], uploader)
	}
}

func extensionForAvatar(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		return "", fmt.Errorf("%w: unsupported content type %q", ErrAvatarInvalid, contentType)
	}
}
