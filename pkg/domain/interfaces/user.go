package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// UserRepository defines the interface for User data access
type UserRepository interface {
	// Create persists a new user with a generated ID. Fails if the email
	// is taken.
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.User, error)

	// Update replaces an existing user
	Update(ctx context.Context, user *model.User) (*model.User, error)
}
