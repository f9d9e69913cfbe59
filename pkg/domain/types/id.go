package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// idPattern matches lowercase alphanumeric identifiers with hyphens,
// used for user-supplied slugs (object types, stage IDs, property names)
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// DefinitionID represents the unique identifier for an object definition
type DefinitionID string

// String returns the string representation of DefinitionID
func (d DefinitionID) String() string {
	return string(d)
}

// ObjectID represents the unique identifier for a generic object
type ObjectID string

// String returns the string representation of ObjectID
func (o ObjectID) String() string {
	return string(o)
}

// GroupID represents the unique identifier for a group
type GroupID string

// String returns the string representation of GroupID
func (g GroupID) String() string {
	return string(g)
}

// UserID represents the unique identifier for a user
type UserID string

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// EndpointID represents the unique identifier for an endpoint record
type EndpointID string

// String returns the string representation of EndpointID
func (e EndpointID) String() string {
	return string(e)
}

// ObjectType represents the unique slug of an object definition.
// It is immutable after the definition is created.
type ObjectType string

// Validate checks if the ObjectType is a valid slug
func (t ObjectType) Validate() error {
	if t == "" {
		return goerr.New("object type cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("object type must be lowercase alphanumeric with hyphens", goerr.V("objectType", t))
	}
	return nil
}

// String returns the string representation of ObjectType
func (t ObjectType) String() string {
	return string(t)
}

// StageID represents a stage identifier within a definition's Kanban workflow
type StageID string

// Validate checks if the StageID is a valid slug
func (s StageID) Validate() error {
	if s == "" {
		return goerr.New("stage ID cannot be empty")
	}
	if !idPattern.MatchString(string(s)) {
		return goerr.New("stage ID must be lowercase alphanumeric with hyphens", goerr.V("stageId", s))
	}
	return nil
}

// String returns the string representation of StageID
func (s StageID) String() string {
	return string(s)
}

// PropertyName represents a property key within an object definition
type PropertyName string

// Validate checks if the PropertyName is a valid slug
func (p PropertyName) Validate() error {
	if p == "" {
		return goerr.New("property name cannot be empty")
	}
	if !idPattern.MatchString(string(p)) {
		return goerr.New("property name must be lowercase alphanumeric with hyphens", goerr.V("property", p))
	}
	return nil
}

// String returns the string representation of PropertyName
func (p PropertyName) String() string {
	return string(p)
}
