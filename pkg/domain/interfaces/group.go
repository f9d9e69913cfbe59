package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// GroupRepository defines the interface for Group data access
type GroupRepository interface {
	// Create persists a new group with a generated ID
	Create(ctx context.Context, group *model.Group) (*model.Group, error)

	// Get retrieves a group by ID
	Get(ctx context.Context, id types.GroupID) (*model.Group, error)

	// List retrieves all groups
	List(ctx context.Context) ([]*model.Group, error)

	// ListByUser retrieves the groups a user belongs to
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.Group, error)

	// Delete removes a group by ID. Share lists and definition assignments
	// referencing the group are not cascaded.
	Delete(ctx context.Context, id types.GroupID) error

	// AddUser adds a user to a group (idempotent)
	AddUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error

	// RemoveUser removes a user from a group
	RemoveUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error

	// AddEndpoint attaches an endpoint to a group (idempotent)
	AddEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error

	// RemoveEndpoint detaches an endpoint from a group
	RemoveEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error
}
