package model

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// User is a console account. PasswordHash is a bcrypt hash and never leaves
// the repository layer.
type User struct {
	ID           types.UserID
	Email        string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
