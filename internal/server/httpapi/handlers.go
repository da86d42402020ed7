package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkhristov/userhub/internal/common"
	"github.com/dkhristov/userhub/internal/logging"
	"github.com/dkhristov/userhub/internal/server/models"
	"github.com/dkhristov/userhub/internal/server/services"
)

// API bundles the HTTP handlers with the services they call.
type API struct {
	accounts *services.AccountService
	auth     *services.AuthService
	logger   logging.Logger
}

func NewAPI(accounts *services.AccountService, auth *services.AuthService, l logging.Logger) *API {
	return &API{accounts: accounts, auth: auth, logger: l.With("module", "httpapi")}
}

// appHandler lets handlers return errors; makeHandler turns them into the
// standardized JSON error response.
type appHandler func(w http.ResponseWriter, r *http.Request) error

func (a *API) makeHandler(h appHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		status, body := statusFor(err)
		if status >= http.StatusInternalServerError {
			a.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "error", err)
		} else {
			a.logger.Warn(r.Context(), "client error", "path", r.URL.Path, "method", r.Method, "status", status)
		}
		respondJSON(w, status, body)
	}
}

// --- request/response DTOs ---

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// userResponse is the public projection of a user record. The password
// hash never appears in any response.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}

type messageResponse struct {
	Message string `json:"message"`
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrValidation
	}
	return nil
}

// idParam parses the {id} route parameter. A non-numeric id addresses no
// resource, so it maps to not-found.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

// --- handlers ---

func (a *API) handleTest(w http.ResponseWriter, r *http.Request) error {
	respondJSON(w, http.StatusOK, messageResponse{"Welcome to the user management microservice"})
	return nil
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := a.accounts.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	a.logger.Info(r.Context(), "user registered", "id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusCreated, toUserResponse(user))
	return nil
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	token, err := a.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, map[string]string{"access_token": token})
	return nil
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) error {
	users, err := a.accounts.List(r.Context())
	if err != nil {
		return err
	}

	result := make([]userResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}

	respondJSON(w, http.StatusOK, result)
	return nil
}

func (a *API) handleGetUser(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	user, err := a.accounts.GetByID(r.Context(), id)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, toUserResponse(user))
	return nil
}

func (a *API) handleUpdateUser(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := a.accounts.Update(r.Context(), id, models.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	a.logger.Info(r.Context(), "user updated", "id", user.ID)
	respondJSON(w, http.StatusOK, toUserResponse(user))
	return nil
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := a.accounts.Delete(r.Context(), id); err != nil {
		return err
	}

	a.logger.Info(r.Context(), "user deleted", "id", id)
	respondJSON(w, http.StatusOK, messageResponse{"user deleted"})
	return nil
}

// handleProtected greets the caller by name. A valid token whose account
// has since been deleted yields 404, not 401.
func (a *API) handleProtected(w http.ResponseWriter, r *http.Request) error {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		return common.ErrorUnauthorized
	}

	user, err := a.auth.CurrentUser(r.Context(), userID)
	if err != nil {
		return err
	}

	respondJSON(w, http.StatusOK, messageResponse{fmt.Sprintf("Hello, %s!", user.Username)})
	return nil
}
