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

type definitionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDefinitionRepository(client *firestore.Client) *definitionRepository {
	return &definitionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *definitionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_object_definitions"
	}
	return "object_definitions"
}

type propertyDoc struct {
	Name         string
	Label        string
	Component    string
	Required     bool
	SummaryOrder *int
}

type stageDoc struct {
	ID             string
	Label          string
	TotalizerField string
	AllowRollback  *bool
}

type definitionDoc struct {
	ID               string
	ObjectType       string
	Label            string
	Properties       []propertyDoc
	Stages           []stageDoc
	DefaultBehaviors map[string]map[string]string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func definitionToDoc(d *model.ObjectDefinition) *definitionDoc {
	properties := make([]propertyDoc, len(d.Properties))
	for i, p := range d.Properties {
		properties[i] = propertyDoc{
			Name:         string(p.Name),
			Label:        p.Label,
			Component:    p.Component.String(),
			Required:     p.Required,
			SummaryOrder: p.SummaryOrder,
		}
	}

	stages := make([]stageDoc, len(d.Stages))
	for i, s := range d.Stages {
		stages[i] = stageDoc{
			ID:             string(s.ID),
			Label:          s.Label,
			TotalizerField: string(s.TotalizerField),
			AllowRollback:  s.AllowRollback,
		}
	}

	return &definitionDoc{
		ID:               string(d.ID),
		ObjectType:       string(d.ObjectType),
		Label:            d.Label,
		Properties:       properties,
		Stages:           stages,
		DefaultBehaviors: behaviorsToDoc(d.DefaultBehaviors),
		IsActive:         d.IsActive,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func definitionFromDoc(doc *definitionDoc) *model.ObjectDefinition {
	properties := make([]model.PropertyDefinition, len(doc.Properties))
	for i, p := range doc.Properties {
		properties[i] = model.PropertyDefinition{
			Name:         types.PropertyName(p.Name),
			Label:        p.Label,
			Component:    types.Component(p.Component),
			Required:     p.Required,
			SummaryOrder: p.SummaryOrder,
		}
	}

	stages := make([]model.KanbanStage, len(doc.Stages))
	for i, s := range doc.Stages {
		stages[i] = model.KanbanStage{
			ID:             types.StageID(s.ID),
			Label:          s.Label,
			TotalizerField: types.PropertyName(s.TotalizerField),
			AllowRollback:  s.AllowRollback,
		}
	}

	return &model.ObjectDefinition{
		ID:               types.DefinitionID(doc.ID),
		ObjectType:       types.ObjectType(doc.ObjectType),
		Label:            doc.Label,
		Properties:       properties,
		Stages:           stages,
		DefaultBehaviors: behaviorsFromDoc(doc.DefaultBehaviors),
		IsActive:         doc.IsActive,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

func (r *definitionRepository) Create(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error) {
	// Check object type uniqueness first
	iter := r.client.Collection(r.collection()).
		Where("ObjectType", "==", string(def.ObjectType)).Limit(1).Documents(ctx)
	defer iter.Stop()
	if _, err := iter.Next(); err != iterator.Done {
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check object type uniqueness", goerr.V("objectType", def.ObjectType))
		}
		return nil, goerr.Wrap(ErrConflict, "object type already exists", goerr.V("objectType", def.ObjectType))
	}

	now := time.Now().UTC()
	created := *def
	created.ID = types.DefinitionID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := definitionToDoc(&created)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create definition", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *definitionRepository) Get(ctx context.Context, id types.DefinitionID) (*model.ObjectDefinition, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V("id", id))
	}

	var doc definitionDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode definition", goerr.V("id", id))
	}

	return definitionFromDoc(&doc), nil
}

func (r *definitionRepository) GetByType(ctx context.Context, objectType types.ObjectType) (*model.ObjectDefinition, error) {
	iter := r.client.Collection(r.collection()).
		Where("ObjectType", "==", string(objectType)).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("objectType", objectType))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query definition", goerr.V("objectType", objectType))
	}

	var doc definitionDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode definition", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return definitionFromDoc(&doc), nil
}

func (r *definitionRepository) List(ctx context.Context) ([]*model.ObjectDefinition, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var definitions []*model.ObjectDefinition
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate definitions")
		}

		var doc definitionDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode definition", goerr.V("doc_id", docSnap.Ref.ID))
		}

		definitions = append(definitions, definitionFromDoc(&doc))
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
	docRef := r.client.Collection(r.collection()).Doc(string(def.ID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "definition not found", goerr.V("id", def.ID))
		}
		return nil, goerr.Wrap(err, "failed to check definition existence", goerr.V("id", def.ID))
	}

	var existing definitionDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode definition", goerr.V("id", def.ID))
	}

	updated := *def
	updated.ObjectType = types.ObjectType(existing.ObjectType) // immutable
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc := definitionToDoc(&updated)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to update definition", goerr.V("id", def.ID))
	}

	return &updated, nil
}
