package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type logRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLogRepository(client *firestore.Client) *logRepository {
	return &logRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *logRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_error_logs"
	}
	return "error_logs"
}

type logDoc struct {
	ID        string
	Kind      string
	Message   string
	Path      string
	UserID    string
	CreatedAt time.Time
}

func logToDoc(l *model.ErrorLog) *logDoc {
	return &logDoc{
		ID:        l.ID,
		Kind:      l.Kind.String(),
		Message:   l.Message,
		Path:      l.Path,
		UserID:    string(l.UserID),
		CreatedAt: l.CreatedAt,
	}
}

func logFromDoc(doc *logDoc) *model.ErrorLog {
	return &model.ErrorLog{
		ID:        doc.ID,
		Kind:      types.LogKind(doc.Kind),
		Message:   doc.Message,
		Path:      doc.Path,
		UserID:    types.UserID(doc.UserID),
		CreatedAt: doc.CreatedAt,
	}
}

func (r *logRepository) Append(ctx context.Context, entry *model.ErrorLog) error {
	stored := *entry
	if stored.ID == "" {
		stored.ID = model.NewLogID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	doc := logToDoc(&stored)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to append log entry", goerr.V("kind", entry.Kind))
	}

	return nil
}

func (r *logRepository) Get(ctx context.Context, id string) (*model.ErrorLog, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get log entry", goerr.V("id", id))
	}

	var doc logDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode log entry", goerr.V("id", id))
	}

	return logFromDoc(&doc), nil
}

func (r *logRepository) ListByKind(ctx context.Context, kind types.LogKind) ([]*model.ErrorLog, error) {
	iter := r.client.Collection(r.collection()).
		Where("Kind", "==", kind.String()).Documents(ctx)
	defer iter.Stop()

	var entries []*model.ErrorLog
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate log entries", goerr.V("kind", kind))
		}

		var doc logDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode log entry", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entries = append(entries, logFromDoc(&doc))
	}

	// ULIDs sort chronologically; newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
