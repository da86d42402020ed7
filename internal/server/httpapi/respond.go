// Package httpapi exposes the service over a JSON HTTP API.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkhristov/userhub/internal/common"
)

// errorBody is the wire shape of every error response, mirroring the
// category + human-readable message split of the error taxonomy.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error","message":"Something went wrong on the server"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

// statusFor maps a service error to an HTTP status plus the public error
// body. Anything unmapped is a 500 with no internal detail leaked.
func statusFor(err error) (int, errorBody) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, errorBody{"Validation Error", "username, email and password are required"}
	case errors.Is(err, common.ErrUsernameTaken):
		return http.StatusBadRequest, errorBody{"Duplicate Username", "username already taken"}
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusBadRequest, errorBody{"Duplicate Email", "email already taken"}
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{"Invalid Credentials", "invalid username or password"}
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, errorBody{"Unauthorized", "missing or invalid access token"}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, errorBody{"Not Found", "the requested resource was not found"}
	default:
		return http.StatusInternalServerError, errorBody{"Internal Server Error", "Something went wrong on the server"}
	}
}
