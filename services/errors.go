package services

import "errors"

var (
	// validation and business rules
	ErrValidationFailed  = errors.New("validation failed")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrInvalidEmail      = errors.New("email address is not valid")
	ErrUnknownCountry    = errors.New("country is not in the accepted list")
	ErrInvalidScore      = errors.New("score must be a whole number between 0 and 99")
	ErrInvalidFilter     = errors.New("invalid filter value")
	ErrPredictionsClosed = errors.New("predictions are closed for this match")
	ErrChampionLocked    = errors.New("champion selection is closed")
	ErrAvatarInvalid     = errors.New("avatar must be a JPEG, PNG, WEBP or GIF image of at most 5 MB")

	// conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")

	// authentication
	ErrInvalidCredentials = errors.New("invalid email or password")

	// missing resources
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")

	// unavailable collaborators
	ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

	// score recalculation. Input failures abort before any write; write
	// failures leave the remaining users updated.
	ErrScoringInputUnavailable = errors.New("score recalculation inputs unavailable")
	ErrScoringPartialWrite     = errors.New("score recalculation could not update every user")
)
