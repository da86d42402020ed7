package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhristov/userhub/internal/common"
	"github.com/dkhristov/userhub/internal/server/models"
)

func seedUser(t *testing.T, r *MemoryRepository, username, email string) *models.User {
	t.Helper()
	u, err := r.Create(context.Background(), &models.User{Username: username, Email: email, PasswordHash: "h"})
	require.NoError(t, err)
	return u
}

func TestMemory_CreateAssignsSequentialIDs(t *testing.T) {
	r := NewMemoryRepository()

	a := seedUser(t, r, "alice", "alice@x.com")
	b := seedUser(t, r, "bob", "bob@x.com")

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
}

func TestMemory_UniquenessCheckedUsernameFirst(t *testing.T) {
	r := NewMemoryRepository()
	seedUser(t, r, "alice", "alice@x.com")

	// same username and same email: username wins
	_, err := r.Create(context.Background(), &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrUsernameTaken)

	_, err = r.Create(context.Background(), &models.User{Username: "bob", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestMemory_UpdateChecksUniquenessExcludingSelf(t *testing.T) {
	r := NewMemoryRepository()
	a := seedUser(t, r, "alice", "alice@x.com")
	seedUser(t, r, "bob", "bob@x.com")

	// updating a record to its own values is fine
	a.PasswordHash = "new"
	_, err := r.Update(context.Background(), a)
	require.NoError(t, err)

	// taking bob's username is not
	a.Username = "bob"
	_, err = r.Update(context.Background(), a)
	assert.ErrorIs(t, err, common.ErrUsernameTaken)
}

func TestMemory_ListOrderedByID(t *testing.T) {
	r := NewMemoryRepository()
	seedUser(t, r, "bob", "bob@x.com")
	seedUser(t, r, "alice", "alice@x.com")

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "bob", list[0].Username)
	assert.Equal(t, "alice", list[1].Username)
}

func TestMemory_DeleteTwiceNotFound(t *testing.T) {
	r := NewMemoryRepository()
	a := seedUser(t, r, "alice", "alice@x.com")

	require.NoError(t, r.Delete(context.Background(), a.ID))
	assert.ErrorIs(t, r.Delete(context.Background(), a.ID), common.ErrorNotFound)

	_, err := r.GetByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
