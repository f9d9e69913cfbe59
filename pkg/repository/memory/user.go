package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type userRepository struct {
	mu      sync.RWMutex
	users   map[types.UserID]*model.User
	byEmail map[string]types.UserID
}

func newUserRepository() *userRepository {
	return &userRepository{
		users:   make(map[types.UserID]*model.User),
		byEmail: make(map[string]types.UserID),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	if u.PasswordHash != nil {
		hash := make([]byte, len(u.PasswordHash))
		copy(hash, u.PasswordHash)
		copied.PasswordHash = hash
	}
	return &copied
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, goerr.Wrap(ErrConflict, "email already registered", goerr.V("email", user.Email))
	}

	now := time.Now().UTC()
	created := copyUser(user)
	created.ID = types.UserID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	r.users[created.ID] = created
	r.byEmail[created.Email] = created.ID
	return copyUser(created), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}
	return copyUser(user), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byEmail[email]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	return copyUser(r.users[id]), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[user.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", user.ID))
	}

	if user.Email != existing.Email {
		if _, taken := r.byEmail[user.Email]; taken {
			return nil, goerr.Wrap(ErrConflict, "email already registered", goerr.V("email", user.Email))
		}
		delete(r.byEmail, existing.Email)
	}

	updated := copyUser(user)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.users[updated.ID] = updated
	r.byEmail[updated.Email] = updated.ID
	return copyUser(updated), nil
}
