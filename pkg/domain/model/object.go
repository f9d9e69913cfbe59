package model

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// GenericObject is one instance of a user-defined object type, tagged with
// its current Kanban stage and an access classification
type GenericObject struct {
	ID                 types.ObjectID
	ObjectDefinitionID types.DefinitionID
	CurrentStageID     types.StageID
	Properties         map[string]any
	Visibility         types.Visibility
	SharedWithGroupIDs []types.GroupID
	SharedWithUserIDs  []types.UserID
	CreatedByID        types.UserID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsOwner reports whether the given user created the object
func (o *GenericObject) IsOwner(userID types.UserID) bool {
	return o.CreatedByID != "" && o.CreatedByID == userID
}

// CanChangeVisibility reports whether the given viewer may change the
// object's visibility: only the creator or an administrator may.
func (o *GenericObject) CanChangeVisibility(userID types.UserID, isAdmin bool) bool {
	return isAdmin || o.IsOwner(userID)
}

// VisibleTo reports whether the viewer may see the object. groupIDs are the
// groups the viewer belongs to.
func (o *GenericObject) VisibleTo(userID types.UserID, isAdmin bool, groupIDs []types.GroupID) bool {
	if isAdmin || o.IsOwner(userID) {
		return true
	}

	switch o.Visibility {
	case types.VisibilityPublic:
		return true
	case types.VisibilityShared:
		for _, uid := range o.SharedWithUserIDs {
			if uid == userID {
				return true
			}
		}
		for _, shared := range o.SharedWithGroupIDs {
			for _, gid := range groupIDs {
				if gid == shared {
					return true
				}
			}
		}
		return false
	default:
		// private
		return false
	}
}
