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

type EndpointUseCase struct {
	repo interfaces.Repository
}

func NewEndpointUseCase(repo interfaces.Repository) *EndpointUseCase {
	return &EndpointUseCase{
		repo: repo,
	}
}

func (uc *EndpointUseCase) Create(ctx context.Context, path, method, description string) (*model.Endpoint, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if path == "" || method == "" {
		return nil, goerr.Wrap(ErrValidation, "endpoint path and method are required")
	}

	created, err := uc.repo.Endpoint().Create(ctx, &model.Endpoint{
		Path:        path,
		Method:      method,
		Description: description,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create endpoint")
	}
	return created, nil
}

func (uc *EndpointUseCase) List(ctx context.Context) ([]*model.Endpoint, error) {
	endpoints, err := uc.repo.Endpoint().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list endpoints")
	}
	return endpoints, nil
}

func (uc *EndpointUseCase) Delete(ctx context.Context, id types.EndpointID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Endpoint().Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrEndpointNotFound, "endpoint not found", goerr.V(EndpointIDKey, id))
		}
		return goerr.Wrap(err, "failed to delete endpoint", goerr.V(EndpointIDKey, id))
	}
	return nil
}

func (uc *EndpointUseCase) AddToGroup(ctx context.Context, endpointID types.EndpointID, groupID types.GroupID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if _, err := uc.repo.Endpoint().Get(ctx, endpointID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrEndpointNotFound, "endpoint not found", goerr.V(EndpointIDKey, endpointID))
		}
		return goerr.Wrap(err, "failed to get endpoint", goerr.V(EndpointIDKey, endpointID))
	}

	if err := uc.repo.Group().AddEndpoint(ctx, groupID, endpointID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, groupID))
		}
		return goerr.Wrap(err, "failed to add endpoint to group",
			goerr.V(EndpointIDKey, endpointID), goerr.V(GroupIDKey, groupID))
	}
	return nil
}

func (uc *EndpointUseCase) RemoveFromGroup(ctx context.Context, endpointID types.EndpointID, groupID types.GroupID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.Group().RemoveEndpoint(ctx, groupID, endpointID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, groupID))
		}
		return goerr.Wrap(err, "failed to remove endpoint from group",
			goerr.V(EndpointIDKey, endpointID), goerr.V(GroupIDKey, groupID))
	}
	return nil
}
