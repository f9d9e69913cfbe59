package model

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// Group is a named set of users. Groups carry endpoint access and
// per-definition permission overrides.
type Group struct {
	ID          types.GroupID
	Name        string
	UserIDs     []types.UserID
	EndpointIDs []types.EndpointID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasUser reports whether the user is a member of the group
func (g *Group) HasUser(userID types.UserID) bool {
	for _, id := range g.UserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasEndpoint reports whether the endpoint is attached to the group
func (g *Group) HasEndpoint(endpointID types.EndpointID) bool {
	for _, id := range g.EndpointIDs {
		if id == endpointID {
			return true
		}
	}
	return false
}
