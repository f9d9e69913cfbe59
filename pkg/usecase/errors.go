package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrDefinitionNotFound = errors.New("object definition not found")
	ErrObjectNotFound     = errors.New("object not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrLogNotFound        = errors.New("log entry not found")

	// Validation errors
	ErrValidation = errors.New("validation failed")

	// Access control errors
	ErrNotAuthorized      = errors.New("not authorized")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Stage transition no-ops. Both leave the object untouched; the HTTP
	// layer converts them to a success response with the unchanged object.
	ErrStageUnchanged = errors.New("object already in target stage")
	ErrRollbackDenied = errors.New("rollback not allowed from current stage")
)

// Context keys for error values
const (
	DefinitionIDKey = "definition_id"
	ObjectTypeKey   = "object_type"
	ObjectIDKey     = "object_id"
	GroupIDKey      = "group_id"
	EndpointIDKey   = "endpoint_id"
	UserIDKey       = "user_id"
	StageIDKey      = "stage_id"
	TargetKey       = "target"
)
