package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/errs"
)

type DefinitionUseCase struct {
	repo interfaces.Repository
}

func NewDefinitionUseCase(repo interfaces.Repository) *DefinitionUseCase {
	return &DefinitionUseCase{
		repo: repo,
	}
}

func requireAdmin(ctx context.Context) (*auth.Token, error) {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrNotAuthorized, "no session")
	}
	if !token.IsAdmin {
		return nil, goerr.Wrap(ErrNotAuthorized, "administrator required", goerr.V(UserIDKey, token.Sub))
	}
	return token, nil
}

// Create validates and stores a new object definition. Administrators only.
func (uc *DefinitionUseCase) Create(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Definition().Create(ctx, def)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, goerr.Wrap(ErrValidation, "object type already exists", goerr.V(ObjectTypeKey, def.ObjectType))
		}
		return nil, goerr.Wrap(err, "failed to create definition")
	}

	return created, nil
}

func (uc *DefinitionUseCase) Get(ctx context.Context, id types.DefinitionID) (*model.ObjectDefinition, error) {
	def, err := uc.repo.Definition().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(DefinitionIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V(DefinitionIDKey, id))
	}
	return def, nil
}

func (uc *DefinitionUseCase) GetByType(ctx context.Context, objectType types.ObjectType) (*model.ObjectDefinition, error) {
	def, err := uc.repo.Definition().GetByType(ctx, objectType)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(ObjectTypeKey, objectType))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V(ObjectTypeKey, objectType))
	}
	return def, nil
}

func (uc *DefinitionUseCase) List(ctx context.Context) ([]*model.ObjectDefinition, error) {
	definitions, err := uc.repo.Definition().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list definitions")
	}
	return definitions, nil
}

// Update validates and replaces an existing definition. The object type is
// immutable; the repository keeps the stored value. Administrators only.
func (uc *DefinitionUseCase) Update(ctx context.Context, def *model.ObjectDefinition) (*model.ObjectDefinition, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	existing, err := uc.Get(ctx, def.ID)
	if err != nil {
		return nil, err
	}

	// Validate against the stored object type so a tampered type in the
	// payload cannot fail or bypass validation
	def.ObjectType = existing.ObjectType
	if err := def.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Definition().Update(ctx, def)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update definition", goerr.V(DefinitionIDKey, def.ID))
	}

	return updated, nil
}

// AssignGroup attaches a group to a definition with no overrides yet
func (uc *DefinitionUseCase) AssignGroup(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) (*model.DefinitionGroup, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if _, err := uc.Get(ctx, definitionID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.Group().Get(ctx, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrGroupNotFound, "group not found", goerr.V(GroupIDKey, groupID))
		}
		return nil, goerr.Wrap(err, "failed to get group", goerr.V(GroupIDKey, groupID))
	}

	assigned, err := uc.repo.DefinitionGroup().Assign(ctx, &model.DefinitionGroup{
		ObjectDefinitionID: definitionID,
		GroupID:            groupID,
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return nil, goerr.Wrap(ErrValidation, "group already assigned",
				goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
		}
		return nil, goerr.Wrap(err, "failed to assign group",
			goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
	}

	return assigned, nil
}

func (uc *DefinitionUseCase) RemoveGroup(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	if err := uc.repo.DefinitionGroup().Remove(ctx, definitionID, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return goerr.Wrap(ErrGroupNotFound, "group assignment not found",
				goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
		}
		return goerr.Wrap(err, "failed to remove group assignment",
			goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
	}

	return nil
}

func (uc *DefinitionUseCase) ListGroups(ctx context.Context, definitionID types.DefinitionID) ([]*model.DefinitionGroup, error) {
	if _, err := uc.Get(ctx, definitionID); err != nil {
		return nil, err
	}

	assignments, err := uc.repo.DefinitionGroup().ListByDefinition(ctx, definitionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list group assignments", goerr.V(DefinitionIDKey, definitionID))
	}
	return assignments, nil
}

// UpdateGroupPermissions replaces a group's behavior overrides for one
// definition. Every entry must narrow or match the definition default;
// anything more permissive is rejected and nothing is stored.
func (uc *DefinitionUseCase) UpdateGroupPermissions(ctx context.Context, definitionID types.DefinitionID, groupID types.GroupID, permissions model.BehaviorMap) (*model.DefinitionGroup, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	def, err := uc.Get(ctx, definitionID)
	if err != nil {
		return nil, err
	}

	if err := model.ValidateOverride(def, permissions); err != nil {
		return nil, err
	}

	updated, err := uc.repo.DefinitionGroup().UpdatePermissions(ctx, definitionID, groupID, permissions)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrGroupNotFound, "group assignment not found",
				goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
		}
		return nil, goerr.Wrap(err, "failed to update group permissions",
			goerr.V(DefinitionIDKey, definitionID), goerr.V(GroupIDKey, groupID))
	}

	return updated, nil
}
