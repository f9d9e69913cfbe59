package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// DefinitionRepository defines the interface for ObjectDefinition data access
type DefinitionRepository interface {
	// Create persists a new definition. Fails if the object type is taken.
	Create(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error)

	// Get retrieves a definition by ID
	Get(ctx context.Context, id types.DefinitionID) (*model.ObjectDefinition, error)

	// GetByType retrieves a definition by its object type slug
	GetByType(ctx context.Context, objectType types.ObjectType) (*model.ObjectDefinition, error)

	// List retrieves all definitions ordered by creation time
	List(ctx context.Context) ([]*model.ObjectDefinition, error)

	// Update replaces an existing definition. The object type is immutable;
	// callers must carry the stored value over.
	Update(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error)
}

// DefinitionGroupRepository defines the interface for group assignments on
// object definitions, including their permission overrides
type DefinitionGroupRepository interface {
	// Assign attaches a group to a definition
	Assign(ctx context.Context, dg *model.DefinitionGroup) (*model.DefinitionGroup, error)

	// Remove detaches a group from a definition
	Remove(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) error

	// Get retrieves one assignment
	Get(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) (*model.DefinitionGroup, error)

	// ListByDefinition retrieves all assignments of a definition
	ListByDefinition(ctx context.Context, definitionID types.DefinitionID) ([]*model.DefinitionGroup, error)

	// UpdatePermissions replaces the behavior overrides of an assignment
	UpdatePermissions(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID, permissions model.BehaviorMap) (*model.DefinitionGroup, error)
}
