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

type definitionGroupKey struct {
	definitionID types.DefinitionID
	groupID      types.GroupID
}

type definitionGroupRepository struct {
	mu          sync.RWMutex
	assignments map[definitionGroupKey]*model.DefinitionGroup
}

func newDefinitionGroupRepository() *definitionGroupRepository {
	return &definitionGroupRepository{
		assignments: make(map[definitionGroupKey]*model.DefinitionGroup),
	}
}

func copyDefinitionGroup(dg *model.DefinitionGroup) *model.DefinitionGroup {
	return &model.DefinitionGroup{
		ID:                 dg.ID,
		ObjectDefinitionID: dg.ObjectDefinitionID,
		GroupID:            dg.GroupID,
		Permissions:        dg.Permissions.Clone(),
		CreatedAt:          dg.CreatedAt,
	}
}

func (r *definitionGroupRepository) Assign(ctx context.Context, dg *model.DefinitionGroup) (*model.DefinitionGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := definitionGroupKey{dg.ObjectDefinitionID, dg.GroupID}
	if _, exists := r.assignments[key]; exists {
		return nil, goerr.Wrap(ErrConflict, "group already assigned to definition",
			goerr.V("definitionId", dg.ObjectDefinitionID), goerr.V("groupId", dg.GroupID))
	}

	created := copyDefinitionGroup(dg)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.assignments[key] = created
	return copyDefinitionGroup(created), nil
}

func (r *definitionGroupRepository) Remove(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := definitionGroupKey{definitionID, groupID}
	if _, exists := r.assignments[key]; !exists {
		return goerr.Wrap(ErrNotFound, "group assignment not found",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}
	delete(r.assignments, key)
	return nil
}

func (r *definitionGroupRepository) Get(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) (*model.DefinitionGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dg, exists := r.assignments[definitionGroupKey{definitionID, groupID}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group assignment not found",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}
	return copyDefinitionGroup(dg), nil
}

func (r *definitionGroupRepository) ListByDefinition(ctx context.Context, definitionID types.DefinitionID) ([]*model.DefinitionGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.DefinitionGroup
	for key, dg := range r.assignments {
		if key.definitionID == definitionID {
			result = append(result, copyDefinitionGroup(dg))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *definitionGroupRepository) UpdatePermissions(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID, permissions model.BehaviorMap) (*model.DefinitionGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := definitionGroupKey{definitionID, groupID}
	dg, exists := r.assignments[key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group assignment not found",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	updated := copyDefinitionGroup(dg)
	updated.Permissions = permissions.Clone()
	r.assignments[key] = updated
	return copyDefinitionGroup(updated), nil
}
