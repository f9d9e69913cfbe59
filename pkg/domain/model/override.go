package model

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// DefinitionGroup assigns a group to an object definition and optionally
// carries the group's per-stage behavior overrides. Permissions stay nil
// until the first override is saved; a nil map means the group sees the
// definition defaults.
type DefinitionGroup struct {
	ID                 string
	ObjectDefinitionID types.DefinitionID
	GroupID            types.GroupID
	Permissions        BehaviorMap
	CreatedAt          time.Time
}
