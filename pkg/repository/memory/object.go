package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type objectRepository struct {
	mu      sync.RWMutex
	objects map[types.ObjectID]*model.GenericObject
}

func newObjectRepository() *objectRepository {
	return &objectRepository{
		objects: make(map[types.ObjectID]*model.GenericObject),
	}
}

// copyProperties creates a shallow-value deep copy of a property map.
// Values are JSON scalars in practice; slices are copied defensively.
func copyProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	copied := make(map[string]any, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case []any:
			s := make([]any, len(val))
			copy(s, val)
			copied[k] = s
		default:
			copied[k] = v
		}
	}
	return copied
}

// copyObject creates a deep copy of a generic object
func copyObject(o *model.GenericObject) *model.GenericObject {
	groupIDs := make([]types.GroupID, len(o.SharedWithGroupIDs))
	copy(groupIDs, o.SharedWithGroupIDs)

	userIDs := make([]types.UserID, len(o.SharedWithUserIDs))
	copy(userIDs, o.SharedWithUserIDs)

	return &model.GenericObject{
		ID:                 o.ID,
		ObjectDefinitionID: o.ObjectDefinitionID,
		CurrentStageID:     o.CurrentStageID,
		Properties:         copyProperties(o.Properties),
		Visibility:         o.Visibility,
		SharedWithGroupIDs: groupIDs,
		SharedWithUserIDs:  userIDs,
		CreatedByID:        o.CreatedByID,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func (r *objectRepository) Create(ctx context.Context, obj *model.GenericObject) (*model.GenericObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyObject(obj)
	created.ID = types.ObjectID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	r.objects[created.ID] = created
	return copyObject(created), nil
}

func (r *objectRepository) Get(ctx context.Context, id types.ObjectID) (*model.GenericObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obj, exists := r.objects[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", id))
	}
	return copyObject(obj), nil
}

func (r *objectRepository) List(ctx context.Context, opts ...interfaces.ListObjectOption) ([]*model.GenericObject, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filter interfaces.ListObjectFilter
	for _, opt := range opts {
		opt(&filter)
	}

	objects := make([]*model.GenericObject, 0, len(r.objects))
	for _, obj := range r.objects {
		if filter.DefinitionID != "" && obj.ObjectDefinitionID != filter.DefinitionID {
			continue
		}
		if filter.StageID != "" && obj.CurrentStageID != filter.StageID {
			continue
		}
		if filter.CreatedByID != "" && obj.CreatedByID != filter.CreatedByID {
			continue
		}
		objects = append(objects, copyObject(obj))
	}
	sort.Slice(objects, func(i, j int) bool {
		if objects[i].CreatedAt.Equal(objects[j].CreatedAt) {
			return objects[i].ID < objects[j].ID
		}
		return objects[i].CreatedAt.Before(objects[j].CreatedAt)
	})
	return objects, nil
}

func (r *objectRepository) Update(ctx context.Context, obj *model.GenericObject) (*model.GenericObject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.objects[obj.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", obj.ID))
	}

	updated := copyObject(obj)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.objects[updated.ID] = updated
	return copyObject(updated), nil
}

func (r *objectRepository) Delete(ctx context.Context, id types.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objects[id]; !exists {
		return goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", id))
	}
	delete(r.objects, id)
	return nil
}
