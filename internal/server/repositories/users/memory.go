package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dkhristov/userhub/internal/common"
	"github.com/dkhristov/userhub/internal/server/models"
)

// MemoryRepository is an in-memory Repository used by tests. It enforces the
// same uniqueness semantics as the Postgres schema.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[int64]*models.User)}
}

// checkUnique reports a duplicate sentinel when another record (id != exclude)
// holds the same username or email. Username is checked first.
func (r *MemoryRepository) checkUnique(username, email string, exclude int64) error {
	for _, u := range r.byID {
		if u.ID == exclude {
			continue
		}
		if u.Username == username {
			return common.ErrUsernameTaken
		}
	}
	for _, u := range r.byID {
		if u.ID == exclude {
			continue
		}
		if u.Email == email {
			return common.ErrEmailTaken
		}
	}
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(user.Username, user.Email, 0); err != nil {
		return nil, err
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.byID[user.ID] = clone(user)

	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		result = append(result, clone(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[user.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if err := r.checkUnique(user.Username, user.Email, user.ID); err != nil {
		return nil, err
	}

	user.CreatedAt = stored.CreatedAt
	r.byID[user.ID] = clone(user)

	return user, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)

	return nil
}
