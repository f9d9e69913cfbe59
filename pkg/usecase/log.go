package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/errs"
)

type LogUseCase struct {
	repo interfaces.Repository
}

func NewLogUseCase(repo interfaces.Repository) *LogUseCase {
	return &LogUseCase{
		repo: repo,
	}
}

// Record appends an error log entry. Failures to record are returned so
// the caller can decide whether to surface them; the HTTP layer only
// logs them.
func (uc *LogUseCase) Record(ctx context.Context, kind types.LogKind, message, path string, userID types.UserID) error {
	if err := uc.repo.Log().Append(ctx, &model.ErrorLog{
		Kind:    kind,
		Message: message,
		Path:    path,
		UserID:  userID,
	}); err != nil {
		return goerr.Wrap(err, "failed to record error log", goerr.V("kind", kind))
	}
	return nil
}

// ListByKind returns the error log screen contents, newest first.
// Administrators only.
func (uc *LogUseCase) ListByKind(ctx context.Context, kind types.LogKind) ([]*model.ErrorLog, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	entries, err := uc.repo.Log().ListByKind(ctx, kind)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list error logs", goerr.V("kind", kind))
	}
	return entries, nil
}

func (uc *LogUseCase) Get(ctx context.Context, id string) (*model.ErrorLog, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	entry, err := uc.repo.Log().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrLogNotFound, "log entry not found", goerr.V("log_id", id))
		}
		return nil, goerr.Wrap(err, "failed to get log entry", goerr.V("log_id", id))
	}
	return entry, nil
}
