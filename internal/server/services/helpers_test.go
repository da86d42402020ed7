package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dkhristov/userhub/internal/dbx"
	"github.com/dkhristov/userhub/internal/server/config"
	usersrepo "github.com/dkhristov/userhub/internal/server/repositories/users"
)

// memoryManager plugs the in-memory users repository into the
// RepositoryManager seam. The DBTX argument is ignored; transaction
// boundaries are still exercised against the sqlmock connection.
type memoryManager struct {
	repo *usersrepo.MemoryRepository
}

func newMemoryManager() *memoryManager {
	return &memoryManager{repo: usersrepo.NewMemoryRepository()}
}

func (m *memoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memoryManager) Users(db dbx.DBTX) usersrepo.Repository { return m.repo }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
	}
}

// expectTx registers one successful transaction on the mock.
func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

// expectFailedTx registers one rolled-back transaction on the mock.
func expectFailedTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectRollback()
}
