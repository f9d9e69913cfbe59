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

type groupRepository struct {
	mu     sync.RWMutex
	groups map[types.GroupID]*model.Group
}

func newGroupRepository() *groupRepository {
	return &groupRepository{
		groups: make(map[types.GroupID]*model.Group),
	}
}

func copyGroup(g *model.Group) *model.Group {
	userIDs := make([]types.UserID, len(g.UserIDs))
	copy(userIDs, g.UserIDs)

	endpointIDs := make([]types.EndpointID, len(g.EndpointIDs))
	copy(endpointIDs, g.EndpointIDs)

	return &model.Group{
		ID:          g.ID,
		Name:        g.Name,
		UserIDs:     userIDs,
		EndpointIDs: endpointIDs,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyGroup(group)
	created.ID = types.GroupID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	r.groups[created.ID] = created
	return copyGroup(created), nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, exists := r.groups[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}
	return copyGroup(group), nil
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]*model.Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, copyGroup(g))
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].ID < groups[j].ID
		}
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID types.UserID) ([]*model.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*model.Group
	for _, g := range r.groups {
		if g.HasUser(userID) {
			groups = append(groups, copyGroup(g))
		}
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.groups[id]; !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
	}
	delete(r.groups, id)
	return nil
}

func (r *groupRepository) AddUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, exists := r.groups[groupID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", groupID))
	}
	if group.HasUser(userID) {
		return nil
	}

	updated := copyGroup(group)
	updated.UserIDs = append(updated.UserIDs, userID)
	updated.UpdatedAt = time.Now().UTC()
	r.groups[groupID] = updated
	return nil
}

func (r *groupRepository) RemoveUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, exists := r.groups[groupID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", groupID))
	}

	updated := copyGroup(group)
	userIDs := updated.UserIDs[:0]
	for _, id := range updated.UserIDs {
		if id != userID {
			userIDs = append(userIDs, id)
		}
	}
	updated.UserIDs = userIDs
	updated.UpdatedAt = time.Now().UTC()
	r.groups[groupID] = updated
	return nil
}

func (r *groupRepository) AddEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, exists := r.groups[groupID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", groupID))
	}
	if group.HasEndpoint(endpointID) {
		return nil
	}

	updated := copyGroup(group)
	updated.EndpointIDs = append(updated.EndpointIDs, endpointID)
	updated.UpdatedAt = time.Now().UTC()
	r.groups[groupID] = updated
	return nil
}

func (r *groupRepository) RemoveEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, exists := r.groups[groupID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", groupID))
	}

	updated := copyGroup(group)
	endpointIDs := updated.EndpointIDs[:0]
	for _, id := range updated.EndpointIDs {
		if id != endpointID {
			endpointIDs = append(endpointIDs, id)
		}
	}
	updated.EndpointIDs = endpointIDs
	updated.UpdatedAt = time.Now().UTC()
	r.groups[groupID] = updated
	return nil
}
