package firestore

import "github.com/gui-far/objectboard/pkg/repository/errs"

// Sentinel errors shared with the memory backend
var (
	ErrNotFound = errs.ErrNotFound
	ErrConflict = errs.ErrConflict
)
