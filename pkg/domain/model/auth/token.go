package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// TokenID identifies one issued session token (the JWT ID claim).
// Revoking a session deletes the record with this ID.
type TokenID string

// String returns the string representation of TokenID
func (t TokenID) String() string {
	return string(t)
}

// Token is a server-side session record backing a bearer access token
type Token struct {
	ID        TokenID
	Sub       types.UserID
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewToken creates a new session token for the given user
func NewToken(sub types.UserID, email string, isAdmin bool, ttl time.Duration) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.NewString()),
		Sub:       sub,
		Email:     email,
		IsAdmin:   isAdmin,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}

// NewAnonymousToken returns a token for no-auth development mode. The
// anonymous user is an administrator so every screen is reachable.
func NewAnonymousToken(email string) *Token {
	return NewToken(types.UserID("anonymous"), email, true, 24*time.Hour)
}

type ctxKey struct{}

// ErrNoToken is returned when the context carries no session token
var ErrNoToken = goerr.New("no session token in context")

// ContextWithToken returns a context carrying the session token
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts the session token from the context
func TokenFromContext(ctx context.Context) (*Token, error) {
	token, ok := ctx.Value(ctxKey{}).(*Token)
	if !ok || token == nil {
		return nil, ErrNoToken
	}
	return token, nil
}
