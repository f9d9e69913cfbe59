package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/repository/errs"
)

// AuthUseCaseInterface abstracts authentication so the server can swap in
// no-auth mode for development
type AuthUseCaseInterface interface {
	Signup(ctx context.Context, email, password string) (*model.User, error)
	Signin(ctx context.Context, email, password string) (string, *auth.Token, error)
	ValidateToken(ctx context.Context, raw string) (*auth.Token, error)
	Signout(ctx context.Context, tokenID auth.TokenID) error
	ForgotPassword(ctx context.Context, email string) (*auth.ResetToken, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	IsNoAuthn() bool
}

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

type AuthUseCase struct {
	repo        interfaces.Repository
	secret      []byte
	tokenTTL    time.Duration
	adminEmails map[string]bool
}

var _ AuthUseCaseInterface = &AuthUseCase{}

// AuthOption is a functional option for AuthUseCase
type AuthOption func(*AuthUseCase)

// WithTokenTTL sets the access token lifetime
func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(uc *AuthUseCase) {
		uc.tokenTTL = ttl
	}
}

// WithAdminEmails marks accounts that sign up with these addresses as
// administrators
func WithAdminEmails(emails []string) AuthOption {
	return func(uc *AuthUseCase) {
		for _, email := range emails {
			uc.adminEmails[email] = true
		}
	}
}

func NewAuthUseCase(repo interfaces.Repository, secret []byte, options ...AuthOption) *AuthUseCase {
	uc := &AuthUseCase{
		repo:        repo,
		secret:      secret,
		tokenTTL:    24 * time.Hour,
		adminEmails: make(map[string]bool),
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func (uc *AuthUseCase) Signup(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, goerr.Wrap(ErrValidation, "email is required")
	}
	if len(password) < minPasswordLength {
		return nil, goerr.Wrap(ErrValidation, "password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to hash password")
	}

	created, err := uc.repo.User().Create(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      uc.adminEmails[email],
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, goerr.Wrap(ErrValidation, "email already registered")
		}
		return nil, goerr.Wrap(err, "failed to create user")
	}

	return created, nil
}

// Signin verifies the credentials, persists a session record, and returns
// the signed bearer token. The JWT ID is the session record's ID so a
// signout can revoke the token before its expiry.
func (uc *AuthUseCase) Signin(ctx context.Context, email, password string) (string, *auth.Token, error) {
	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", nil, goerr.Wrap(ErrInvalidCredentials, "unknown email")
		}
		return "", nil, goerr.Wrap(err, "failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, goerr.Wrap(ErrInvalidCredentials, "password mismatch")
	}

	session := auth.NewToken(user.ID, user.Email, user.IsAdmin, uc.tokenTTL)
	if err := uc.repo.PutToken(ctx, session); err != nil {
		return "", nil, goerr.Wrap(err, "failed to persist session")
	}

	signed, err := uc.sign(session)
	if err != nil {
		return "", nil, err
	}

	return signed, session, nil
}

func (uc *AuthUseCase) sign(session *auth.Token) (string, error) {
	tok, err := jwt.NewBuilder().
		JwtID(session.ID.String()).
		Subject(string(session.Sub)).
		Claim("email", session.Email).
		Claim("admin", session.IsAdmin).
		IssuedAt(session.CreatedAt).
		Expiration(session.ExpiresAt).
		Build()
	if err != nil {
		return "", goerr.Wrap(err, "failed to build token")
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, uc.secret))
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token")
	}

	return string(signed), nil
}

// ValidateToken checks the signature and expiry of a bearer token and
// confirms the session has not been revoked
func (uc *AuthUseCase) ValidateToken(ctx context.Context, raw string) (*auth.Token, error) {
	parsed, err := jwt.Parse([]byte(raw), jwt.WithKey(jwa.HS256, uc.secret), jwt.WithValidate(true))
	if err != nil {
		return nil, goerr.Wrap(ErrNotAuthorized, "invalid token")
	}

	session, err := uc.repo.GetToken(ctx, auth.TokenID(parsed.JwtID()))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrNotAuthorized, "session revoked")
		}
		return nil, goerr.Wrap(err, "failed to get session")
	}
	if session.IsExpired() {
		return nil, goerr.Wrap(ErrNotAuthorized, "session expired")
	}

	return session, nil
}

// Signout revokes the session. Revoking an already-revoked session is
// not an error.
func (uc *AuthUseCase) Signout(ctx context.Context, tokenID auth.TokenID) error {
	if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil
		}
		return goerr.Wrap(err, "failed to delete session")
	}
	return nil
}

// ForgotPassword issues a single-use reset token for the account. The
// token is returned to the caller for delivery; there is no mailer here.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) (*auth.ResetToken, error) {
	user, err := uc.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "unknown email")
		}
		return nil, goerr.Wrap(err, "failed to get user")
	}

	token, err := auth.NewResetToken(user.ID, resetTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.PutResetToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to persist reset token")
	}

	return token, nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return goerr.Wrap(ErrValidation, "password must be at least 8 characters")
	}

	consumed, err := uc.repo.ConsumeResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrNotAuthorized, "invalid or used reset token")
		}
		return goerr.Wrap(err, "failed to consume reset token")
	}
	if consumed.IsExpired() {
		return goerr.Wrap(ErrNotAuthorized, "reset token expired")
	}

	user, err := uc.repo.User().Get(ctx, consumed.UserID)
	if err != nil {
		return goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, consumed.UserID))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return goerr.Wrap(err, "failed to hash password")
	}

	user.PasswordHash = hash
	if _, err := uc.repo.User().Update(ctx, user); err != nil {
		return goerr.Wrap(err, "failed to update user", goerr.V(UserIDKey, user.ID))
	}

	return nil
}
