package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Manuelherrera22/Quinela/models"
	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimEmail = "email"
	jwtClaimRole  = "role"
	jwtClaimName  = "name"
)

var errNoClaims = errors.New("user claims not found in context or invalid type")

// WithClaims returns a context carrying the given identity, as Authenticate
// would after verifying a token.
func WithClaims(ctx context.Context, email string, role models.UserRole) context.Context {
	return context.WithValue(ctx, userContextKey, jwt.MapClaims{
		jwtClaimEmail: email,
		jwtClaimRole:  string(role),
	})
}

func GetUserEmailFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}
	return emailFromClaims(claims)
}

func emailFromClaims(claims jwt.MapClaims) (string, error) {
	emailClaim, ok := claims[jwtClaimEmail]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimEmail)
	}
	email, ok := emailClaim.(string)
	if !ok || email == "" {
		return "", fmt.Errorf("invalid '%s' claim in token", jwtClaimEmail)
	}
	return email, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errNoClaims
	}

	roleClaim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	roleStr, ok := roleClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: expected string, got %T", jwtClaimRole, roleClaim)
	}

	role := models.UserRole(roleStr)
	switch role {
	case models.RoleAdmin, models.RolePlayer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", roleStr)
	}
}
