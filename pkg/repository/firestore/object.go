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

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type objectRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newObjectRepository(client *firestore.Client) *objectRepository {
	return &objectRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *objectRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_objects"
	}
	return "objects"
}

type objectDoc struct {
	ID                 string
	ObjectDefinitionID string
	CurrentStageID     string
	Properties         map[string]any
	Visibility         string
	SharedWithGroupIDs []string
	SharedWithUserIDs  []string
	CreatedByID        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func objectToDoc(o *model.GenericObject) *objectDoc {
	groupIDs := make([]string, len(o.SharedWithGroupIDs))
	for i, id := range o.SharedWithGroupIDs {
		groupIDs[i] = string(id)
	}
	userIDs := make([]string, len(o.SharedWithUserIDs))
	for i, id := range o.SharedWithUserIDs {
		userIDs[i] = string(id)
	}

	return &objectDoc{
		ID:                 string(o.ID),
		ObjectDefinitionID: string(o.ObjectDefinitionID),
		CurrentStageID:     string(o.CurrentStageID),
		Properties:         o.Properties,
		Visibility:         o.Visibility.String(),
		SharedWithGroupIDs: groupIDs,
		SharedWithUserIDs:  userIDs,
		CreatedByID:        string(o.CreatedByID),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func objectFromDoc(doc *objectDoc) *model.GenericObject {
	groupIDs := make([]types.GroupID, len(doc.SharedWithGroupIDs))
	for i, id := range doc.SharedWithGroupIDs {
		groupIDs[i] = types.GroupID(id)
	}
	userIDs := make([]types.UserID, len(doc.SharedWithUserIDs))
	for i, id := range doc.SharedWithUserIDs {
		userIDs[i] = types.UserID(id)
	}

	return &model.GenericObject{
		ID:                 types.ObjectID(doc.ID),
		ObjectDefinitionID: types.DefinitionID(doc.ObjectDefinitionID),
		CurrentStageID:     types.StageID(doc.CurrentStageID),
		Properties:         doc.Properties,
		Visibility:         types.Visibility(doc.Visibility),
		SharedWithGroupIDs: groupIDs,
		SharedWithUserIDs:  userIDs,
		CreatedByID:        types.UserID(doc.CreatedByID),
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
}

func (r *objectRepository) Create(ctx context.Context, obj *model.GenericObject) (*model.GenericObject, error) {
	now := time.Now().UTC()
	created := *obj
	created.ID = types.ObjectID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := objectToDoc(&created)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create object", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *objectRepository) Get(ctx context.Context, id types.ObjectID) (*model.GenericObject, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get object", goerr.V("id", id))
	}

	var doc objectDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode object", goerr.V("id", id))
	}

	return objectFromDoc(&doc), nil
}

func (r *objectRepository) List(ctx context.Context, opts ...interfaces.ListObjectOption) ([]*model.GenericObject, error) {
	var filter interfaces.ListObjectFilter
	for _, opt := range opts {
		opt(&filter)
	}

	query := r.client.Collection(r.collection()).Query
	if filter.DefinitionID != "" {
		query = query.Where("ObjectDefinitionID", "==", string(filter.DefinitionID))
	}
	if filter.StageID != "" {
		query = query.Where("CurrentStageID", "==", string(filter.StageID))
	}
	if filter.CreatedByID != "" {
		query = query.Where("CreatedByID", "==", string(filter.CreatedByID))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var objects []*model.GenericObject
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate objects")
		}

		var doc objectDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode object", goerr.V("doc_id", docSnap.Ref.ID))
		}

		objects = append(objects, objectFromDoc(&doc))
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
	docRef := r.client.Collection(r.collection()).Doc(string(obj.ID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", obj.ID))
		}
		return nil, goerr.Wrap(err, "failed to check object existence", goerr.V("id", obj.ID))
	}

	var existing objectDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode object", goerr.V("id", obj.ID))
	}

	updated := *obj
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, objectToDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update object", goerr.V("id", obj.ID))
	}

	return &updated, nil
}

func (r *objectRepository) Delete(ctx context.Context, id types.ObjectID) error {
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "object not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check object existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete object", goerr.V("id", id))
	}

	return nil
}
