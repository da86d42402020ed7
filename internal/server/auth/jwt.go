// Package auth implements the credential primitives of the service:
// signed access tokens and password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dkhristov/userhub/internal/common"
)

// Tokens are HS256 JWTs. The signing method is pinned on parse so a token
// signed with any other algorithm is rejected outright.
var signingMethod = jwt.SigningMethodHS256

// GenerateToken issues a signed access token for the given user id.
// The token carries the user id as the subject, an issued-at timestamp,
// an expiry of now+validityDuration, and a unique token id.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(signingMethod, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		ID:        uuid.NewString(),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken verifies tokenString against secretKey and returns the
// subject user id. Expired tokens yield common.ErrTokenExpired; everything
// else (malformed token, bad signature, wrong algorithm, missing subject)
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
