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

type UserUseCase struct {
	repo interfaces.Repository
}

func NewUserUseCase(repo interfaces.Repository) *UserUseCase {
	return &UserUseCase{
		repo: repo,
	}
}

func (uc *UserUseCase) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	user, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, id))
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]*model.User, error) {
	if _, err := sessionToken(ctx); err != nil {
		return nil, err
	}

	users, err := uc.repo.User().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list users")
	}
	return users, nil
}
