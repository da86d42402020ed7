package httpapi

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. An absent or malformed header yields an empty string, which the
// auth service rejects.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAuth verifies the bearer token and stores the caller's user id in
// the request context. Protected handlers never run on failure.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.auth.Authorize(r.Context(), bearerToken(r))
		if err != nil {
			a.logger.Warn(r.Context(), "unauthorized request", "path", r.URL.Path)
			status, body := statusFor(err)
			respondJSON(w, status, body)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromContext returns the caller id placed there by requireAuth.
func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
