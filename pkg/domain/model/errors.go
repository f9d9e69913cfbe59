package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for model-level validation
var (
	ErrInvalidDefinition = goerr.New("invalid object definition")
	ErrInvalidOverride   = goerr.New("override is more permissive than the definition default")
	ErrInvalidSharing    = goerr.New("shared visibility requires at least one group or user")
)

// Context keys for error values
const (
	StageIDKey        = "stage_id"
	PropertyKey       = "property"
	RequestedValueKey = "requested_value"
	AllowedCeilingKey = "allowed_ceiling"
)
