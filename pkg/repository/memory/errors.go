package memory

import "github.com/gui-far/objectboard/pkg/repository/errs"

// Sentinel errors shared with the firestore backend
var (
	ErrNotFound = errs.ErrNotFound
	ErrConflict = errs.ErrConflict
)
