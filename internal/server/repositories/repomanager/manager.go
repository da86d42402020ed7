// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkhristov/userhub/internal/dbx"
	"github.com/dkhristov/userhub/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the provided DBTX,
// which may be either the shared *sql.DB or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}
