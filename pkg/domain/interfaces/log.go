package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// LogRepository defines the interface for the error log read surface
type LogRepository interface {
	// Append stores a new error log entry
	Append(ctx context.Context, entry *model.ErrorLog) error

	// ListByKind retrieves entries of one kind, newest first
	ListByKind(ctx context.Context, kind types.LogKind) ([]*model.ErrorLog, error)

	// Get retrieves one entry by ID
	Get(ctx context.Context, id string) (*model.ErrorLog, error)
}
