package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/dkhristov/userhub/internal/common"
	"github.com/dkhristov/userhub/internal/server/auth"
	"github.com/dkhristov/userhub/internal/server/config"
	"github.com/dkhristov/userhub/internal/server/models"
	"github.com/dkhristov/userhub/internal/server/repositories/repomanager"
)

// AuthService is the gate in front of protected operations: it validates
// login credentials, issues access tokens, and resolves tokens back to
// live accounts.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Login verifies the credentials and returns a signed access token.
// Unknown usernames and wrong passwords both map to
// common.ErrInvalidCredentials so the response cannot be used to probe
// which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(rawPassword, user.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(strconv.FormatInt(user.ID, 10), s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// Authorize verifies an access token and returns the caller's user id.
// Every verification failure, including expiry, maps to
// common.ErrorUnauthorized; whether the account still exists is not
// checked here.
func (s *AuthService) Authorize(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}

	subject, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return 0, common.ErrorUnauthorized
	}

	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, common.ErrorUnauthorized
	}

	return id, nil
}

// CurrentUser resolves an authorized caller id to a live account. When the
// account was deleted after the token was issued, the result is
// common.ErrorNotFound, deliberately distinct from an authorization
// failure.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}
