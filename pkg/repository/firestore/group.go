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

type groupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newGroupRepository(client *firestore.Client) *groupRepository {
	return &groupRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *groupRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_groups"
	}
	return "groups"
}

type groupDoc struct {
	ID          string
	Name        string
	UserIDs     []string
	EndpointIDs []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func groupToDoc(g *model.Group) *groupDoc {
	userIDs := make([]string, len(g.UserIDs))
	for i, id := range g.UserIDs {
		userIDs[i] = string(id)
	}
	endpointIDs := make([]string, len(g.EndpointIDs))
	for i, id := range g.EndpointIDs {
		endpointIDs[i] = string(id)
	}

	return &groupDoc{
		ID:          string(g.ID),
		Name:        g.Name,
		UserIDs:     userIDs,
		EndpointIDs: endpointIDs,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func groupFromDoc(doc *groupDoc) *model.Group {
	userIDs := make([]types.UserID, len(doc.UserIDs))
	for i, id := range doc.UserIDs {
		userIDs[i] = types.UserID(id)
	}
	endpointIDs := make([]types.EndpointID, len(doc.EndpointIDs))
	for i, id := range doc.EndpointIDs {
		endpointIDs[i] = types.EndpointID(id)
	}

	return &model.Group{
		ID:          types.GroupID(doc.ID),
		Name:        doc.Name,
		UserIDs:     userIDs,
		EndpointIDs: endpointIDs,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) (*model.Group, error) {
	now := time.Now().UTC()
	created := *group
	created.ID = types.GroupID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := groupToDoc(&created)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create group", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *groupRepository) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	var doc groupDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode group", goerr.V("id", id))
	}

	return groupFromDoc(&doc), nil
}

func (r *groupRepository) List(ctx context.Context) ([]*model.Group, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var groups []*model.Group
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate groups")
		}

		var doc groupDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode group", goerr.V("doc_id", docSnap.Ref.ID))
		}

		groups = append(groups, groupFromDoc(&doc))
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
	iter := r.client.Collection(r.collection()).
		Where("UserIDs", "array-contains", string(userID)).Documents(ctx)
	defer iter.Stop()

	var groups []*model.Group
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate groups", goerr.V("userId", userID))
		}

		var doc groupDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode group", goerr.V("doc_id", docSnap.Ref.ID))
		}

		groups = append(groups, groupFromDoc(&doc))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, id types.GroupID) error {
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check group existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete group", goerr.V("id", id))
	}

	return nil
}

func (r *groupRepository) get(ctx context.Context, id types.GroupID) (*firestore.DocumentRef, *model.Group, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(id))
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil, goerr.Wrap(ErrNotFound, "group not found", goerr.V("id", id))
		}
		return nil, nil, goerr.Wrap(err, "failed to get group", goerr.V("id", id))
	}

	var doc groupDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to decode group", goerr.V("id", id))
	}

	return docRef, groupFromDoc(&doc), nil
}

func (r *groupRepository) put(ctx context.Context, docRef *firestore.DocumentRef, group *model.Group) error {
	group.UpdatedAt = time.Now().UTC()
	if _, err := docRef.Set(ctx, groupToDoc(group)); err != nil {
		return goerr.Wrap(err, "failed to update group", goerr.V("id", group.ID))
	}
	return nil
}

func (r *groupRepository) AddUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	docRef, group, err := r.get(ctx, groupID)
	if err != nil {
		return err
	}
	if group.HasUser(userID) {
		return nil
	}

	group.UserIDs = append(group.UserIDs, userID)
	return r.put(ctx, docRef, group)
}

func (r *groupRepository) RemoveUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	docRef, group, err := r.get(ctx, groupID)
	if err != nil {
		return err
	}

	userIDs := group.UserIDs[:0]
	for _, id := range group.UserIDs {
		if id != userID {
			userIDs = append(userIDs, id)
		}
	}
	group.UserIDs = userIDs
	return r.put(ctx, docRef, group)
}

func (r *groupRepository) AddEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error {
	docRef, group, err := r.get(ctx, groupID)
	if err != nil {
		return err
	}
	if group.HasEndpoint(endpointID) {
		return nil
	}

	group.EndpointIDs = append(group.EndpointIDs, endpointID)
	return r.put(ctx, docRef, group)
}

func (r *groupRepository) RemoveEndpoint(ctx context.Context, groupID types.GroupID, endpointID types.EndpointID) error {
	docRef, group, err := r.get(ctx, groupID)
	if err != nil {
		return err
	}

	endpointIDs := group.EndpointIDs[:0]
	for _, id := range group.EndpointIDs {
		if id != endpointID {
			endpointIDs = append(endpointIDs, id)
		}
	}
	group.EndpointIDs = endpointIDs
	return r.put(ctx, docRef, group)
}
