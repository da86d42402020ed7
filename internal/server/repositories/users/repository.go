// Package users provides durable storage for user records.
package users

import (
	"context"

	"github.com/dkhristov/userhub/internal/server/models"
)

// Repository is the storage contract for user records. Lookups that find
// nothing return common.ErrorNotFound; writes that break a uniqueness
// constraint return common.ErrUsernameTaken or common.ErrEmailTaken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}
