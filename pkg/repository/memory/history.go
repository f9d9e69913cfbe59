package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type historyRepository struct {
	mu      sync.RWMutex
	entries map[types.ObjectID][]*model.HistoryEntry
}

func newHistoryRepository() *historyRepository {
	return &historyRepository{
		entries: make(map[types.ObjectID][]*model.HistoryEntry),
	}
}

func copyHistoryEntry(e *model.HistoryEntry) *model.HistoryEntry {
	var changes map[string]model.PropertyChange
	if e.Changes != nil {
		changes = make(map[string]model.PropertyChange, len(e.Changes))
		for k, v := range e.Changes {
			changes[k] = v
		}
	}

	return &model.HistoryEntry{
		ID:              e.ID,
		ObjectID:        e.ObjectID,
		ChangeType:      e.ChangeType,
		PreviousStageID: e.PreviousStageID,
		NewStageID:      e.NewStageID,
		Changes:         changes,
		ChangedByID:     e.ChangedByID,
		CreatedAt:       e.CreatedAt,
	}
}

func (r *historyRepository) Append(ctx context.Context, entry *model.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyHistoryEntry(entry)
	if stored.ID == "" {
		stored.ID = model.NewHistoryID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	r.entries[stored.ObjectID] = append(r.entries[stored.ObjectID], stored)
	return nil
}

func (r *historyRepository) ListByObject(ctx context.Context, objectID types.ObjectID) ([]*model.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.entries[objectID]
	entries := make([]*model.HistoryEntry, 0, len(stored))
	for _, e := range stored {
		entries = append(entries, copyHistoryEntry(e))
	}
	// ULIDs sort chronologically; newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
