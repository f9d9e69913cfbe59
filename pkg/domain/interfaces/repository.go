package interfaces

import (
	"context"

	"github.com/gui-far/objectboard/pkg/domain/model/auth"
)

// Repository defines the interface for data persistence
type Repository interface {
	Definition() DefinitionRepository
	DefinitionGroup() DefinitionGroupRepository
	Object() ObjectRepository
	History() HistoryRepository
	Group() GroupRepository
	Endpoint() EndpointRepository
	User() UserRepository
	Log() LogRepository

	// Session token methods
	PutToken(ctx context.Context, token *auth.Token) error
	GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error)
	DeleteToken(ctx context.Context, tokenID auth.TokenID) error

	// Password reset token methods. Consume deletes the token so it can be
	// used at most once.
	PutResetToken(ctx context.Context, token *auth.ResetToken) error
	ConsumeResetToken(ctx context.Context, token string) (*auth.ResetToken, error)

	Close() error
}
