package model

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// ErrorLog records a request failure for the console's log screens.
// Permission errors are kept separate from general errors so the two
// screens can page through them independently.
type ErrorLog struct {
	ID        string
	Kind      types.LogKind
	Message   string
	Path      string
	UserID    types.UserID
	CreatedAt time.Time
}

// NewLogID returns a new sortable error log ID
func NewLogID() string {
	return ulid.Make().String()
}
