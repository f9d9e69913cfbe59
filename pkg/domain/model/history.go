package model

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// PropertyChange records one property mutation inside a history entry
type PropertyChange struct {
	Old any
	New any
}

// HistoryEntry is one record of an object's append-only audit log.
// Entries are never mutated after creation. IDs are ULIDs so the log
// sorts chronologically by ID.
type HistoryEntry struct {
	ID              string
	ObjectID        types.ObjectID
	ChangeType      types.ChangeType
	PreviousStageID types.StageID // empty for created entries
	NewStageID      types.StageID
	Changes         map[string]PropertyChange // only for property_update
	ChangedByID     types.UserID
	CreatedAt       time.Time
}

// NewHistoryID returns a new sortable history entry ID
func NewHistoryID() string {
	return ulid.Make().String()
}
