package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// ResetToken is a single-use password reset token. Consuming it deletes it.
type ResetToken struct {
	Token     string
	UserID    types.UserID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// NewResetToken creates a reset token for the given user
func NewResetToken(userID types.UserID, ttl time.Duration) (*ResetToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, goerr.Wrap(err, "failed to generate reset token")
	}

	now := time.Now().UTC()
	return &ResetToken{
		Token:     hex.EncodeToString(raw),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// IsExpired reports whether the reset token has passed its expiry
func (t *ResetToken) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}
