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

type definitionRepository struct {
	mu          sync.RWMutex
	definitions map[types.DefinitionID]*model.ObjectDefinition
	byType      map[types.ObjectType]types.DefinitionID
}

func newDefinitionRepository() *definitionRepository {
	return &definitionRepository{
		definitions: make(map[types.DefinitionID]*model.ObjectDefinition),
		byType:      make(map[types.ObjectType]types.DefinitionID),
	}
}

// copyDefinition creates a deep copy of a definition
func copyDefinition(d *model.ObjectDefinition) *model.ObjectDefinition {
	properties := make([]model.PropertyDefinition, len(d.Properties))
	for i, p := range d.Properties {
		copied := p
		if p.SummaryOrder != nil {
			order := *p.SummaryOrder
			copied.SummaryOrder = &order
		}
		properties[i] = copied
	}

	stages := make([]model.KanbanStage, len(d.Stages))
	for i, s := range d.Stages {
		copied := s
		if s.AllowRollback != nil {
			allow := *s.AllowRollback
			copied.AllowRollback = &allow
		}
		stages[i] = copied
	}

	return &model.ObjectDefinition{
		ID:               d.ID,
		ObjectType:       d.ObjectType,
		Label:            d.Label,
		Properties:       properties,
		Stages:           stages,
		DefaultBehaviors: d.DefaultBehaviors.Clone(),
		IsActive:         d.IsActive,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func (r *definitionRepository) Create(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[def.ObjectType]; exists {
		return nil, goerr.Wrap(ErrConflict, "object type already exists", goerr.V("objectType", def.ObjectType))
	}

	now := time.Now().UTC()
	created := copyDefinition(def)
	created.ID = types.DefinitionID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	r.definitions[created.ID] = created
	r.byType[created.ObjectType] = created.ID
	return copyDefinition(created), nil
}

func (r *definitionRepository) Get(ctx context.Context, id types.DefinitionID) (*model.ObjectDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("id", id))
	}
	return copyDefinition(def), nil
}

func (r *definitionRepository) GetByType(ctx context.Context, objectType types.ObjectType) (*model.ObjectDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.byType[objectType]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("objectType", objectType))
	}
	return copyDefinition(r.definitions[id]), nil
}

func (r *definitionRepository) List(ctx context.Context) ([]*model.ObjectDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	definitions := make([]*model.ObjectDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		definitions = append(definitions, copyDefinition(def))
	}
	sort.Slice(definitions, func(i, j int) bool {
		if definitions[i].CreatedAt.Equal(definitions[j].CreatedAt) {
			return definitions[i].ID < definitions[j].ID
		}
		return definitions[i].CreatedAt.Before(definitions[j].CreatedAt)
	})
	return definitions, nil
}

func (r *definitionRepository) Update(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.definitions[def.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("id", def.ID))
	}

	updated := copyDefinition(def)
	updated.ObjectType = existing.ObjectType // immutable
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.definitions[updated.ID] = updated
	return copyDefinition(updated), nil
}
