package middleware

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v4"
)

// JWT claim names issued by the auth handler.
const (
	jwtClaimUserID      = "user_id"
	jwtClaimDisplayName = "display_name"
)

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("user claims not found in context or invalid type")
	}
	return claims, nil
}

func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return 0, err
	}

	userIDClaim, ok := claims[jwtClaimUserID]
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	}

	// JSON numbers decode as float64; tolerate a string for robustness.
	userIDFloat, ok := userIDClaim.(float64)
	if !ok {
		if userIDStr, okStr := userIDClaim.(string); okStr {
			userID, convErr := strconv.Atoi(userIDStr)
			if convErr == nil && userID > 0 {
				return userID, nil
			}
		}
		return 0, fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimUserID, userIDClaim)
	}

	userID := int(userIDFloat)
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user ID value in '%s' claim: %d", jwtClaimUserID, userID)
	}
	return userID, nil
}

// GetDisplayNameFromContext returns the authenticated account's display
// name, which matching queries use as the default query name.
func GetDisplayNameFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	nameClaim, ok := claims[jwtClaimDisplayName]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimDisplayName)
	}

	name, ok := nameClaim.(string)
	if !ok {
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimDisplayName, nameClaim)
	}
	return name, nil
}
