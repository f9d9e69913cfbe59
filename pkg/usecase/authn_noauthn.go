package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
)

// NoAuthnUseCase provides authentication using a specified user (for development/testing)
type NoAuthnUseCase struct {
	repo  interfaces.Repository
	email string
}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance with specified user info
func NewNoAuthnUseCase(repo interfaces.Repository, email string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:  repo,
		email: email,
	}
}

// Signup is not available in no-auth mode
func (uc *NoAuthnUseCase) Signup(ctx context.Context, email, password string) (*model.User, error) {
	return nil, goerr.Wrap(ErrValidation, "signup is disabled in no-auth mode")
}

// Signin returns a token for the specified user without checking credentials
func (uc *NoAuthnUseCase) Signin(ctx context.Context, email, password string) (string, *auth.Token, error) {
	token := auth.NewAnonymousToken(uc.email)
	return token.ID.String(), token, nil
}

// ValidateToken always returns a token for the specified user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	return auth.NewAnonymousToken(uc.email), nil
}

// Signout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Signout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// ForgotPassword is not available in no-auth mode
func (uc *NoAuthnUseCase) ForgotPassword(ctx context.Context, email string) (*auth.ResetToken, error) {
	return nil, goerr.Wrap(ErrValidation, "password reset is disabled in no-auth mode")
}

// ResetPassword is not available in no-auth mode
func (uc *NoAuthnUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	return goerr.Wrap(ErrValidation, "password reset is disabled in no-auth mode")
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
