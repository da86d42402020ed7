// Package services contains server-side business logic. This file implements
// AccountService, which owns the user lifecycle: registration, lookup,
// partial update, and deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhristov/userhub/internal/common"
	"github.com/dkhristov/userhub/internal/dbx"
	"github.com/dkhristov/userhub/internal/server/auth"
	"github.com/dkhristov/userhub/internal/server/models"
	"github.com/dkhristov/userhub/internal/server/repositories/repomanager"
)

// AccountService provides CRUD over user accounts. It never returns a
// password hash to transport layers directly; handlers serialize only the
// public fields.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// Register creates a new account. All three fields are required. Username
// is checked for duplicates before email, so a request clashing on both
// reports the username. The check and the insert run in one transaction;
// a concurrent insert slipping between them still fails at commit through
// the storage uniqueness constraints, with the same sentinel errors.
func (s *AccountService) Register(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	if username == "" || email == "" || rawPassword == "" {
		return nil, common.ErrValidation
	}

	passwordHash, err := auth.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if err := s.checkAvailable(ctx, repo.GetByUsername, username, common.ErrUsernameTaken); err != nil {
			return err
		}
		if err := s.checkAvailable(ctx, repo.GetByEmail, email, common.ErrEmailTaken); err != nil {
			return err
		}

		user := &models.User{Username: username, Email: email, PasswordHash: passwordHash}
		created, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// GetByID returns the user with the given id or common.ErrorNotFound.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// List returns all users ordered by id. There is no pagination; the user
// table is expected to stay small.
func (s *AccountService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// Update applies the non-nil fields of upd to the user with the given id.
// A password, when present, is re-hashed before storage. Uniqueness of the
// new username/email is enforced the same way as during registration.
func (s *AccountService) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Username != nil && *upd.Username == "" {
		return nil, common.ErrValidation
	}
	if upd.Email != nil && *upd.Email == "" {
		return nil, common.ErrValidation
	}
	if upd.Password != nil && *upd.Password == "" {
		return nil, common.ErrValidation
	}

	var updated *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if upd.Username != nil {
			user.Username = *upd.Username
		}
		if upd.Email != nil {
			user.Email = *upd.Email
		}
		if upd.Password != nil {
			hash, err := auth.HashPassword(*upd.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		updated, err = repo.Update(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes the user. Deleting an absent user returns
// common.ErrorNotFound, so a second delete of the same id fails.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}

// checkAvailable runs a lookup expected to find nothing. A hit returns the
// taken sentinel; any error other than not-found is surfaced wrapped.
func (s *AccountService) checkAvailable(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value string, taken error) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return taken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("uniqueness check: %w", err)
	}
	return nil
}
