package firestore

import (
	"context"
	"fmt"
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

type definitionGroupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDefinitionGroupRepository(client *firestore.Client) *definitionGroupRepository {
	return &definitionGroupRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *definitionGroupRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_definition_groups"
	}
	return "definition_groups"
}

// Document IDs are the (definition, group) pair so one assignment can
// exist per pair and lookups need no query.
func definitionGroupDocID(definitionID types.DefinitionID, groupID types.GroupID) string {
	return fmt.Sprintf("%s_%s", definitionID, groupID)
}

type definitionGroupDoc struct {
	ID                 string
	ObjectDefinitionID string
	GroupID            string
	Permissions        map[string]map[string]string
	CreatedAt          time.Time
}

func definitionGroupToDoc(dg *model.DefinitionGroup) *definitionGroupDoc {
	return &definitionGroupDoc{
		ID:                 dg.ID,
		ObjectDefinitionID: string(dg.ObjectDefinitionID),
		GroupID:            string(dg.GroupID),
		Permissions:        behaviorsToDoc(dg.Permissions),
		CreatedAt:          dg.CreatedAt,
	}
}

func definitionGroupFromDoc(doc *definitionGroupDoc) *model.DefinitionGroup {
	return &model.DefinitionGroup{
		ID:                 doc.ID,
		ObjectDefinitionID: types.DefinitionID(doc.ObjectDefinitionID),
		GroupID:            types.GroupID(doc.GroupID),
		Permissions:        behaviorsFromDoc(doc.Permissions),
		CreatedAt:          doc.CreatedAt,
	}
}

func (r *definitionGroupRepository) Assign(ctx context.Context, dg *model.DefinitionGroup) (*model.DefinitionGroup, error) {
	docRef := r.client.Collection(r.collection()).Doc(definitionGroupDocID(dg.ObjectDefinitionID, dg.GroupID))

	if _, err := docRef.Get(ctx); err == nil {
		return nil, goerr.Wrap(ErrConflict, "group already assigned to definition",
			goerr.V("definitionId", dg.ObjectDefinitionID), goerr.V("groupId", dg.GroupID))
	} else if status.Code(err) != codes.NotFound {
		return nil, goerr.Wrap(err, "failed to check group assignment",
			goerr.V("definitionId", dg.ObjectDefinitionID), goerr.V("groupId", dg.GroupID))
	}

	created := *dg
	created.ID = uuid.NewString()
	created.Permissions = dg.Permissions.Clone()
	created.CreatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, definitionGroupToDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to assign group",
			goerr.V("definitionId", dg.ObjectDefinitionID), goerr.V("groupId", dg.GroupID))
	}

	return &created, nil
}

func (r *definitionGroupRepository) Remove(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) error {
	docRef := r.client.Collection(r.collection()).Doc(definitionGroupDocID(definitionID, groupID))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "group assignment not found",
				goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
		}
		return goerr.Wrap(err, "failed to check group assignment",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to remove group assignment",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	return nil
}

func (r *definitionGroupRepository) Get(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) (*model.DefinitionGroup, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(definitionGroupDocID(definitionID, groupID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "group assignment not found",
				goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
		}
		return nil, goerr.Wrap(err, "failed to get group assignment",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	var doc definitionGroupDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode group assignment", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return definitionGroupFromDoc(&doc), nil
}

func (r *definitionGroupRepository) ListByDefinition(ctx context.Context, definitionID types.DefinitionID) ([]*model.DefinitionGroup, error) {
	iter := r.client.Collection(r.collection()).
		Where("ObjectDefinitionID", "==", string(definitionID)).Documents(ctx)
	defer iter.Stop()

	var assignments []*model.DefinitionGroup
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate group assignments", goerr.V("definitionId", definitionID))
		}

		var doc definitionGroupDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode group assignment", goerr.V("doc_id", docSnap.Ref.ID))
		}

		assignments = append(assignments, definitionGroupFromDoc(&doc))
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].CreatedAt.Before(assignments[j].CreatedAt)
	})
	return assignments, nil
}

func (r *definitionGroupRepository) UpdatePermissions(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID, permissions model.BehaviorMap) (*model.DefinitionGroup, error) {
	docRef := r.client.Collection(r.collection()).Doc(definitionGroupDocID(definitionID, groupID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "group assignment not found",
				goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
		}
		return nil, goerr.Wrap(err, "failed to get group assignment",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	var doc definitionGroupDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode group assignment", goerr.V("doc_id", docSnap.Ref.ID))
	}

	updated := definitionGroupFromDoc(&doc)
	updated.Permissions = permissions.Clone()

	if _, err := docRef.Set(ctx, definitionGroupToDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update group permissions",
			goerr.V("definitionId", definitionID), goerr.V("groupId", groupID))
	}

	return updated, nil
}
