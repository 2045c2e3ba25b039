package models

import "time"

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleAdmin  UserRole = "admin"
)

// User is a pool participant. Email is the identity used everywhere,
// Points and ExactMatches are written only by score recalculation.
type User struct {
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Country          string    `json:"country"`
	PasswordHash     string    `json:"-"`
	Role             UserRole  `json:"role"`
	Points           int       `json:"points"`
	ExactMatches     int       `json:"exact_matches"`
	SelectedChampion *string   `json:"selected_champion,omitempty"`
	AvatarKey        *string   `json:"-"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
