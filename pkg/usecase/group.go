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

type GroupUseCase struct {
	repo interfaces.Repository
}

func NewGroupUseCase(repo interfaces.Repository) *GroupUseCase {
	return &GroupUseCase{
		repo: repo,
	}
}

func (uc *GroupUseCase) Create(ctx context.Context, name string) (*model.Group, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, goerr.Wrap(ErrValidation, "group name is required")
	}

	created, err := uc.repo.Group().Create(ctx, &model.Group{Name: name})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create group")
	}
	return created, nil
}

func (uc *GroupUseCase) Get(ctx context.Context, id types.GroupID) (*model.Group, error) {
	group, err := uc.repo.Group().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V(GroupIDKey, id))
	}
	return group, nil
}

func (uc *GroupUseCase) List(ctx context.Context) ([]*model.Group, error) {
	groups, err := uc.repo.Group().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list groups")
	}
	return groups, nil
}

func (uc *GroupUseCase) Delete(ctx context.Context, id types.GroupID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Group().Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete group", goerr.V(GroupIDKey, id))
	}
	return nil
}

func (uc *GroupUseCase) AddUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := uc.repo.User().Get(ctx, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrUserNotFound, "user not found", goerr.V(UserIDKey, userID))
		}
		return goerr.Wrap(err, "failed to get user", goerr.V(UserIDKey, userID))
	}

	if err := uc.repo.Group().AddUser(ctx, groupID, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, groupID))
		}
		return goerr.Wrap(err, "failed to add user to group",
			goerr.V(GroupIDKey, groupID), goerr.V(UserIDKey, userID))
	}
	return nil
}

func (uc *GroupUseCase) RemoveUser(ctx context.Context, groupID types.GroupID, userID types.UserID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Group().RemoveUser(ctx, groupID, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, groupID))
		}
		return goerr.Wrap(err, "failed to remove user from group",
			goerr.V(GroupIDKey, groupID), goerr.V(UserIDKey, userID))
	}
	return nil
}
