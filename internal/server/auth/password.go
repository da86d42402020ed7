package auth

import (
	"github.com/dkhristov/userhub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted bcrypt hash of the raw password. The salt
// is randomized per call, so hashing the same password twice yields
// different strings that both verify. Empty passwords are rejected.
func HashPassword(rawPassword string) (string, error) {
	if rawPassword == "" {
		return "", common.ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword reports whether rawPassword matches the stored bcrypt hash.
// Malformed hashes simply verify as false; the comparison itself is
// constant-time inside bcrypt.
func CheckPassword(rawPassword, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(rawPassword)) == nil
}
