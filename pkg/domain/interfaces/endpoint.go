package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// EndpointRepository defines the interface for Endpoint data access
type EndpointRepository interface {
	// Create persists a new endpoint with a generated ID
	Create(ctx context.Context, endpoint *model.Endpoint) (*model.Endpoint, error)

	// Get retrieves an endpoint by ID
	Get(ctx context.Context, id types.EndpointID) (*model.Endpoint, error)

	// List retrieves all endpoints
	List(ctx context.Context) ([]*model.Endpoint, error)

	// Delete removes an endpoint by ID
	Delete(ctx context.Context, id types.EndpointID) error
}
