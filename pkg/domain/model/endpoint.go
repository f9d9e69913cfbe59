package model

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// Endpoint is an API route registered in the console for group-level
// access administration
type Endpoint struct {
	ID          types.EndpointID
	Path        string
	Method      string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
