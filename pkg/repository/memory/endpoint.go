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

type endpointRepository struct {
	mu        sync.RWMutex
	endpoints map[types.EndpointID]*model.Endpoint
}

func newEndpointRepository() *endpointRepository {
	return &endpointRepository{
		endpoints: make(map[types.EndpointID]*model.Endpoint),
	}
}

func copyEndpoint(e *model.Endpoint) *model.Endpoint {
	copied := *e
	return &copied
}

func (r *endpointRepository) Create(ctx context.Context, endpoint *model.Endpoint) (*model.Endpoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyEndpoint(endpoint)
	created.ID = types.EndpointID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	r.endpoints[created.ID] = created
	return copyEndpoint(created), nil
}

func (r *endpointRepository) Get(ctx context.Context, id types.EndpointID) (*model.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	endpoint, exists := r.endpoints[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "endpoint not found", goerr.V("id", id))
	}
	return copyEndpoint(endpoint), nil
}

func (r *endpointRepository) List(ctx context.Context) ([]*model.Endpoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	endpoints := make([]*model.Endpoint, 0, len(r.endpoints))
	for _, e := range r.endpoints {
		endpoints = append(endpoints, copyEndpoint(e))
	}
	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].CreatedAt.Equal(endpoints[j].CreatedAt) {
			return endpoints[i].ID < endpoints[j].ID
		}
		return endpoints[i].CreatedAt.Before(endpoints[j].CreatedAt)
	})
	return endpoints, nil
}

func (r *endpointRepository) Delete(ctx context.Context, id types.EndpointID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.endpoints[id]; !exists {
		return goerr.Wrap(ErrNotFound, "endpoint not found", goerr.V("id", id))
	}
	delete(r.endpoints, id)
	return nil
}
