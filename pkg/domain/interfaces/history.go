package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// HistoryRepository defines the interface for the append-only object audit
// log. Entries are never updated or deleted.
type HistoryRepository interface {
	// Append stores a new history entry
	Append(ctx context.Context, entry *model.HistoryEntry) error

	// ListByObject retrieves all entries of an object, newest first
	ListByObject(ctx context.Context, objectID types.ObjectID) ([]*model.HistoryEntry, error)
}
