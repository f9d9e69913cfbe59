package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// ListObjectFilter narrows the result set of ObjectRepository.List
type ListObjectFilter struct {
	DefinitionID types.DefinitionID
	StageID      types.StageID
	CreatedByID  types.UserID
}

// ListObjectOption configures a List call
type ListObjectOption func(*ListObjectFilter)

// WithDefinition filters objects by their definition
func WithDefinition(id types.DefinitionID) ListObjectOption {
	return func(f *ListObjectFilter) {
		f.DefinitionID = id
	}
}

// WithStage filters objects by their current stage
func WithStage(id types.StageID) ListObjectOption {
	return func(f *ListObjectFilter) {
		f.StageID = id
	}
}

// WithCreatedBy filters objects by their creator
func WithCreatedBy(id types.UserID) ListObjectOption {
	return func(f *ListObjectFilter) {
		f.CreatedByID = id
	}
}

// ObjectRepository defines the interface for GenericObject data access
type ObjectRepository interface {
	// Create persists a new object with a generated ID
	Create(ctx context.Context, obj *model.GenericObject) (*model.GenericObject, error)

	// Get retrieves an object by ID
	Get(ctx context.Context, id types.ObjectID) (*model.GenericObject, error)

	// List retrieves objects matching the given filters, ordered by
	// creation time
	List(ctx context.Context, opts ...ListObjectOption) ([]*model.GenericObject, error)

	// Update replaces an existing object
	Update(ctx context.Context, obj *model.GenericObject) (*model.GenericObject, error)

	// Delete removes an object by ID. History entries are retained.
	Delete(ctx context.Context, id types.ObjectID) error
}
