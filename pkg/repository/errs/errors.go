// Package errs holds the sentinel errors shared by every repository
// backend so callers can branch on them without knowing which backend
// is wired in.
package errs

import "github.com/m-mizutani/goerr/v2"

var (
	ErrNotFound = goerr.New("record not found")
	ErrConflict = goerr.New("record already exists")
)
