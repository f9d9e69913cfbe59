package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type historyRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newHistoryRepository(client *firestore.Client) *historyRepository {
	return &historyRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *historyRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_object_histories"
	}
	return "object_histories"
}

type propertyChangeDoc struct {
	Old any
	New any
}

type historyDoc struct {
	ID              string
	ObjectID        string
	ChangeType      string
	PreviousStageID string
	NewStageID      string
	Changes         map[string]propertyChangeDoc
	ChangedByID     string
	CreatedAt       time.Time
}

func historyToDoc(e *model.HistoryEntry) *historyDoc {
	var changes map[string]propertyChangeDoc
	if e.Changes != nil {
		changes = make(map[string]propertyChangeDoc, len(e.Changes))
		for k, v := range e.Changes {
			changes[k] = propertyChangeDoc{Old: v.Old, New: v.New}
		}
	}

	return &historyDoc{
		ID:              e.ID,
		ObjectID:        string(e.ObjectID),
		ChangeType:      e.ChangeType.String(),
		PreviousStageID: string(e.PreviousStageID),
		NewStageID:      string(e.NewStageID),
		Changes:         changes,
		ChangedByID:     string(e.ChangedByID),
		CreatedAt:       e.CreatedAt,
	}
}

func historyFromDoc(doc *historyDoc) *model.HistoryEntry {
	var changes map[string]model.PropertyChange
	if doc.Changes != nil {
		changes = make(map[string]model.PropertyChange, len(doc.Changes))
		for k, v := range doc.Changes {
			changes[k] = model.PropertyChange{Old: v.Old, New: v.New}
		}
	}

	return &model.HistoryEntry{
		ID:              doc.ID,
		ObjectID:        types.ObjectID(doc.ObjectID),
		ChangeType:      types.ChangeType(doc.ChangeType),
		PreviousStageID: types.StageID(doc.PreviousStageID),
		NewStageID:      types.StageID(doc.NewStageID),
		Changes:         changes,
		ChangedByID:     types.UserID(doc.ChangedByID),
		CreatedAt:       doc.CreatedAt,
	}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	stored := *entry
	if stored.ID == "" {
		stored.ID = model.NewHistoryID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	doc := historyToDoc(&stored)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append history entry", goerr.V("objectId", entry.ObjectID))
	}

	return nil
}

func (r *historyRepository) ListByObject(ctx context.Context, objectID types.ObjectID) ([]*model.HistoryEntry, error) {
	iter := r.client.Collection(r.collection()).
		Where("ObjectID", "==", string(objectID)).Documents(ctx)
	defer iter.Stop()

	var entries []*model.HistoryEntry
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate history entries", goerr.V("objectId", objectID))
		}

		var doc historyDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode history entry", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entries = append(entries, historyFromDoc(&doc))
	}

	// ULIDs sort chronologically; newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
