package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type endpointRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEndpointRepository(client *firestore.Client) *endpointRepository {
	return &endpointRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *endpointRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_endpoints"
	}
	return "endpoints"
}

type endpointDoc struct {
	ID          string
	Path        string
	Method      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func endpointToDoc(e *model.Endpoint) *endpointDoc {
	return &endpointDoc{
		ID:          string(e.ID),
		Path:        e.Path,
		Method:      e.Method,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func endpointFromDoc(doc *endpointDoc) *model.Endpoint {
	return &model.Endpoint{
		ID:          types.EndpointID(doc.ID),
		Path:        doc.Path,
		Method:      doc.Method,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *endpointRepository) Create(ctx context.Context, endpoint *model.Endpoint) (*model.Endpoint, error) {
	now := time.Now().UTC()
	created := *endpoint
	created.ID = types.EndpointID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := endpointToDoc(&created)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create endpoint", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *endpointRepository) Get(ctx context.Context, id types.EndpointID) (*model.Endpoint, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "endpoint not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get endpoint", goerr.V("id", id))
	}

	var doc endpointDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode endpoint", goerr.V("id", id))
	}

	return endpointFromDoc(&doc), nil
}

func (r *endpointRepository) List(ctx context.Context) ([]*model.Endpoint, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var endpoints []*model.Endpoint
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate endpoints")
		}

		var doc endpointDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode endpoint", goerr.V("doc_id", docSnap.Ref.ID))
		}

		endpoints = append(endpoints, endpointFromDoc(&doc))
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
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "endpoint not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check endpoint existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete endpoint", goerr.V("id", id))
	}

	return nil
}
