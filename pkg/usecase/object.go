package usecase

import (
	"context"
	"errors"
	"reflect"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/errs"
	"github.com/gui-far/objectboard/pkg/service/notify"
	"github.com/gui-far/objectboard/pkg/utils/async"
)

type ObjectUseCase struct {
	repo     interfaces.Repository
	notifier notify.Service
}

func NewObjectUseCase(repo interfaces.Repository, notifier notify.Service) *ObjectUseCase {
	return &ObjectUseCase{
		repo:     repo,
		notifier: notifier,
	}
}

// ObjectDetail is an object together with the per-property behaviors the
// viewer sees at its current stage
type ObjectDetail struct {
	Object     *model.GenericObject
	Definition *model.ObjectDefinition
	Behaviors  map[types.PropertyName]types.Behavior
}

// ObjectPage is one page of a filtered object listing
type ObjectPage struct {
	Objects    []*model.GenericObject
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type CreateObjectInput struct {
	ObjectType types.ObjectType
	StageID    types.StageID // empty means the definition's first stage
	Properties map[string]any
}

type ListObjectsInput struct {
	ObjectType  types.ObjectType
	StageID     types.StageID
	CreatedByID types.UserID
	Page        int
	Limit       int
}

const (
	defaultPage  = 1
	defaultLimit = 50
)

func sessionToken(ctx context.Context) (*auth.Token, error) {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrNotAuthorized, "no session")
	}
	return token, nil
}

func (uc *ObjectUseCase) getDefinition(ctx context.Context, id types.DefinitionID) (*model.ObjectDefinition, error) {
	def, err := uc.repo.Definition().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(DefinitionIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V(DefinitionIDKey, id))
	}
	return def, nil
}

func (uc *ObjectUseCase) getObject(ctx context.Context, id types.ObjectID) (*model.GenericObject, error) {
	obj, err := uc.repo.Object().Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrObjectNotFound, "object not found", goerr.V(ObjectIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get object", goerr.V(ObjectIDKey, id))
	}
	return obj, nil
}

// checkVisible enforces the visibility rules for one viewer
func (uc *ObjectUseCase) checkVisible(ctx context.Context, obj *model.GenericObject, token *auth.Token) error {
	if token.IsAdmin || obj.IsOwner(token.Sub) {
		return nil
	}

	groupIDs, err := viewerGroupIDs(ctx, uc.repo, token)
	if err != nil {
		return err
	}
	if !obj.VisibleTo(token.Sub, token.IsAdmin, groupIDs) {
		return goerr.Wrap(ErrNotAuthorized, "object not visible to viewer",
			goerr.V(ObjectIDKey, obj.ID), goerr.V(UserIDKey, token.Sub))
	}
	return nil
}

// filterCreateProperties applies create-mode behavior semantics: invisible
// properties are stripped, visible ones are treated as editable and
// required, and required editable ones must be present.
func filterCreateProperties(def *model.ObjectDefinition, behaviors map[types.PropertyName]types.Behavior, input map[string]any) (map[string]any, error) {
	for key := range input {
		if _, ok := def.Property(types.PropertyName(key)); !ok {
			return nil, goerr.Wrap(ErrValidation, "unknown property", goerr.V(model.PropertyKey, key))
		}
	}

	accepted := make(map[string]any, len(input))
	for _, p := range def.Properties {
		value, present := input[string(p.Name)]

		switch behaviors[p.Name] {
		case types.BehaviorInvisible:
			continue
		case types.BehaviorVisible:
			// Visible at create means the form shows the field as a
			// required input
			if !present {
				return nil, goerr.Wrap(ErrValidation, "required property missing", goerr.V(model.PropertyKey, p.Name))
			}
			accepted[string(p.Name)] = value
		default:
			if p.Required && !present {
				return nil, goerr.Wrap(ErrValidation, "required property missing", goerr.V(model.PropertyKey, p.Name))
			}
			if present {
				accepted[string(p.Name)] = value
			}
		}
	}
	return accepted, nil
}

// Create stores a new object of the given type, filtered through the
// creator's effective behaviors at the initial stage, and appends the
// created history entry.
func (uc *ObjectUseCase) Create(ctx context.Context, input *CreateObjectInput) (*model.GenericObject, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	def, err := uc.repo.Definition().GetByType(ctx, input.ObjectType)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(ObjectTypeKey, input.ObjectType))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V(ObjectTypeKey, input.ObjectType))
	}
	if !def.IsActive {
		return nil, goerr.Wrap(ErrValidation, "definition is not active", goerr.V(ObjectTypeKey, input.ObjectType))
	}

	stageID := input.StageID
	if stageID == "" {
		stageID = def.Stages[0].ID
	} else if _, ok := def.Stage(stageID); !ok {
		return nil, goerr.Wrap(ErrValidation, "unknown stage", goerr.V(StageIDKey, stageID))
	}

	behaviors, err := resolveBehaviors(ctx, uc.repo, def, token, token.Sub, stageID)
	if err != nil {
		return nil, err
	}

	properties, err := filterCreateProperties(def, behaviors, input.Properties)
	if err != nil {
		return nil, err
	}

	created, err := uc.repo.Object().Create(ctx, &model.GenericObject{
		ObjectDefinitionID: def.ID,
		CurrentStageID:     stageID,
		Properties:         properties,
		Visibility:         types.VisibilityPrivate,
		CreatedByID:        token.Sub,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create object")
	}

	if err := uc.repo.History().Append(ctx, &model.HistoryEntry{
		ObjectID:    created.ID,
		ChangeType:  types.ChangeTypeCreated,
		NewStageID:  stageID,
		ChangedByID: token.Sub,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to append history", goerr.V(ObjectIDKey, created.ID))
	}

	return created, nil
}

// Get returns the object with the viewer's effective behaviors at its
// current stage
func (uc *ObjectUseCase) Get(ctx context.Context, id types.ObjectID) (*ObjectDetail, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkVisible(ctx, obj, token); err != nil {
		return nil, err
	}

	def, err := uc.getDefinition(ctx, obj.ObjectDefinitionID)
	if err != nil {
		return nil, err
	}

	behaviors, err := resolveBehaviors(ctx, uc.repo, def, token, obj.CreatedByID, obj.CurrentStageID)
	if err != nil {
		return nil, err
	}

	return &ObjectDetail{
		Object:     obj,
		Definition: def,
		Behaviors:  behaviors,
	}, nil
}

// List returns one page of objects visible to the viewer. Objects the
// viewer may not see are filtered out, not reported as errors.
func (uc *ObjectUseCase) List(ctx context.Context, input *ListObjectsInput) (*ObjectPage, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	var opts []interfaces.ListObjectOption
	if input.ObjectType != "" {
		def, err := uc.repo.Definition().GetByType(ctx, input.ObjectType)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(ObjectTypeKey, input.ObjectType))
			}
			return nil, goerr.Wrap(err, "failed to get definition", goerr.V(ObjectTypeKey, input.ObjectType))
		}
		opts = append(opts, interfaces.WithDefinition(def.ID))
	}
	if input.StageID != "" {
		opts = append(opts, interfaces.WithStage(input.StageID))
	}
	if input.CreatedByID != "" {
		opts = append(opts, interfaces.WithCreatedBy(input.CreatedByID))
	}

	objects, err := uc.repo.Object().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list objects")
	}

	groupIDs, err := viewerGroupIDs(ctx, uc.repo, token)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.GenericObject, 0, len(objects))
	for _, obj := range objects {
		if obj.VisibleTo(token.Sub, token.IsAdmin, groupIDs) {
			visible = append(visible, obj)
		}
	}

	page := input.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	total := len(visible)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &ObjectPage{
		Objects:    visible[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Update applies a property patch. Only properties the viewer may edit at
// the current stage pass the filter; visible and invisible ones are
// silently discarded so a tampered form cannot widen its own permissions.
func (uc *ObjectUseCase) Update(ctx context.Context, id types.ObjectID, properties map[string]any) (*model.GenericObject, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkVisible(ctx, obj, token); err != nil {
		return nil, err
	}

	def, err := uc.getDefinition(ctx, obj.ObjectDefinitionID)
	if err != nil {
		return nil, err
	}

	for key := range properties {
		if _, ok := def.Property(types.PropertyName(key)); !ok {
			return nil, goerr.Wrap(ErrValidation, "unknown property", goerr.V(model.PropertyKey, key))
		}
	}

	behaviors, err := resolveBehaviors(ctx, uc.repo, def, token, obj.CreatedByID, obj.CurrentStageID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]model.PropertyChange)
	for key, value := range properties {
		if behaviors[types.PropertyName(key)] != types.BehaviorEditable {
			continue
		}
		old, had := obj.Properties[key]
		if had && reflect.DeepEqual(old, value) {
			continue
		}
		changes[key] = model.PropertyChange{Old: old, New: value}
	}

	if len(changes) == 0 {
		return obj, nil
	}

	if obj.Properties == nil {
		obj.Properties = make(map[string]any, len(changes))
	}
	for key, change := range changes {
		obj.Properties[key] = change.New
	}

	updated, err := uc.repo.Object().Update(ctx, obj)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update object", goerr.V(ObjectIDKey, id))
	}

	if err := uc.repo.History().Append(ctx, &model.HistoryEntry{
		ObjectID:    updated.ID,
		ChangeType:  types.ChangeTypePropertyUpdate,
		NewStageID:  updated.CurrentStageID,
		Changes:     changes,
		ChangedByID: token.Sub,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to append history", goerr.V(ObjectIDKey, id))
	}

	return updated, nil
}

// Delete removes the object after appending the deleted history entry.
// History is retained so the audit trail outlives the record. Only the
// creator or an administrator may delete.
func (uc *ObjectUseCase) Delete(ctx context.Context, id types.ObjectID) error {
	token, err := sessionToken(ctx)
	if err != nil {
		return err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return err
	}
	if !token.IsAdmin && !obj.IsOwner(token.Sub) {
		return goerr.Wrap(ErrNotAuthorized, "only the creator or an administrator may delete",
			goerr.V(ObjectIDKey, id), goerr.V(UserIDKey, token.Sub))
	}

	if err := uc.repo.History().Append(ctx, &model.HistoryEntry{
		ObjectID:        obj.ID,
		ChangeType:      types.ChangeTypeDeleted,
		PreviousStageID: obj.CurrentStageID,
		NewStageID:      obj.CurrentStageID,
		ChangedByID:     token.Sub,
	}); err != nil {
		return goerr.Wrap(err, "failed to append history", goerr.V(ObjectIDKey, id))
	}

	if err := uc.repo.Object().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete object", goerr.V(ObjectIDKey, id))
	}

	return nil
}

// resolveTargetStage maps a drop target to a stage: either a stage ID of
// the definition, or another object's ID (dropping a card onto a card
// lands in that card's stage)
func (uc *ObjectUseCase) resolveTargetStage(ctx context.Context, def *model.ObjectDefinition, target string) (types.StageID, error) {
	if _, ok := def.Stage(types.StageID(target)); ok {
		return types.StageID(target), nil
	}

	other, err := uc.repo.Object().Get(ctx, types.ObjectID(target))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", goerr.Wrap(ErrValidation, "target is neither a stage nor an object", goerr.V(TargetKey, target))
		}
		return "", goerr.Wrap(err, "failed to resolve drop target", goerr.V(TargetKey, target))
	}
	if other.ObjectDefinitionID != def.ID {
		return "", goerr.Wrap(ErrValidation, "target object belongs to another definition", goerr.V(TargetKey, target))
	}
	if _, ok := def.Stage(other.CurrentStageID); !ok {
		return "", goerr.Wrap(ErrValidation, "target object is in an unknown stage", goerr.V(TargetKey, target))
	}
	return other.CurrentStageID, nil
}

// Transition moves an object to another stage. Moving to the current stage
// and a denied rollback are no-ops: the unchanged object is returned
// together with the corresponding sentinel and no history is appended.
func (uc *ObjectUseCase) Transition(ctx context.Context, id types.ObjectID, target string) (*model.GenericObject, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkVisible(ctx, obj, token); err != nil {
		return nil, err
	}

	def, err := uc.getDefinition(ctx, obj.ObjectDefinitionID)
	if err != nil {
		return nil, err
	}

	targetStage, err := uc.resolveTargetStage(ctx, def, target)
	if err != nil {
		return nil, err
	}

	if targetStage == obj.CurrentStageID {
		return obj, goerr.Wrap(ErrStageUnchanged, "object already in target stage",
			goerr.V(ObjectIDKey, id), goerr.V(StageIDKey, targetStage))
	}

	currentIdx := def.StageIndex(obj.CurrentStageID)
	targetIdx := def.StageIndex(targetStage)
	if targetIdx < currentIdx {
		if stage, ok := def.Stage(obj.CurrentStageID); ok && !stage.RollbackAllowed() {
			return obj, goerr.Wrap(ErrRollbackDenied, "current stage does not allow rollback",
				goerr.V(ObjectIDKey, id), goerr.V(StageIDKey, obj.CurrentStageID))
		}
	}

	previous := obj.CurrentStageID
	obj.CurrentStageID = targetStage

	updated, err := uc.repo.Object().Update(ctx, obj)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update object stage", goerr.V(ObjectIDKey, id))
	}

	if err := uc.repo.History().Append(ctx, &model.HistoryEntry{
		ObjectID:        updated.ID,
		ChangeType:      types.ChangeTypeStageChanged,
		PreviousStageID: previous,
		NewStageID:      targetStage,
		ChangedByID:     token.Sub,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to append history", goerr.V(ObjectIDKey, id))
	}

	if uc.notifier != nil {
		notifier := uc.notifier
		async.Dispatch(ctx, func(ctx context.Context) error {
			return notifier.NotifyStageChange(ctx, def, updated, previous, targetStage)
		})
	}

	return updated, nil
}

// Advance moves the object to the next stage in definition order. At the
// last stage this is a no-op; there is no wraparound.
func (uc *ObjectUseCase) Advance(ctx context.Context, id types.ObjectID) (*model.GenericObject, error) {
	return uc.step(ctx, id, +1)
}

// Retreat moves the object to the previous stage, subject to the rollback
// gate of the current stage. At the first stage this is a no-op.
func (uc *ObjectUseCase) Retreat(ctx context.Context, id types.ObjectID) (*model.GenericObject, error) {
	return uc.step(ctx, id, -1)
}

func (uc *ObjectUseCase) step(ctx context.Context, id types.ObjectID, delta int) (*model.GenericObject, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkVisible(ctx, obj, token); err != nil {
		return nil, err
	}

	def, err := uc.getDefinition(ctx, obj.ObjectDefinitionID)
	if err != nil {
		return nil, err
	}

	idx := def.StageIndex(obj.CurrentStageID)
	if idx < 0 {
		return nil, goerr.Wrap(ErrValidation, "object is in an unknown stage",
			goerr.V(ObjectIDKey, id), goerr.V(StageIDKey, obj.CurrentStageID))
	}

	next := idx + delta
	if next < 0 || next >= len(def.Stages) {
		return obj, goerr.Wrap(ErrStageUnchanged, "no stage beyond the current one",
			goerr.V(ObjectIDKey, id), goerr.V(StageIDKey, obj.CurrentStageID))
	}

	return uc.Transition(ctx, id, string(def.Stages[next].ID))
}

// UpdateSharing replaces the visibility classification of an object. Only
// the creator or an administrator may change it. Shared visibility needs a
// non-empty share list; private and public clear both lists. The update is
// all-or-nothing: a rejected request leaves the stored state untouched.
func (uc *ObjectUseCase) UpdateSharing(ctx context.Context, id types.ObjectID, visibility types.Visibility, groupIDs []types.GroupID, userIDs []types.UserID) (*model.GenericObject, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if !obj.CanChangeVisibility(token.Sub, token.IsAdmin) {
		return nil, goerr.Wrap(ErrNotAuthorized, "only the creator or an administrator may change visibility",
			goerr.V(ObjectIDKey, id), goerr.V(UserIDKey, token.Sub))
	}

	if !visibility.IsValid() {
		return nil, goerr.Wrap(ErrValidation, "invalid visibility", goerr.V("visibility", visibility))
	}

	switch visibility {
	case types.VisibilityShared:
		if len(groupIDs) == 0 && len(userIDs) == 0 {
			return nil, goerr.Wrap(model.ErrInvalidSharing, "share lists are empty", goerr.V(ObjectIDKey, id))
		}
		obj.SharedWithGroupIDs = groupIDs
		obj.SharedWithUserIDs = userIDs
	default:
		obj.SharedWithGroupIDs = nil
		obj.SharedWithUserIDs = nil
	}
	obj.Visibility = visibility

	updated, err := uc.repo.Object().Update(ctx, obj)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update sharing", goerr.V(ObjectIDKey, id))
	}

	return updated, nil
}

// History returns the object's audit log, newest first. The same
// visibility rules as Get apply.
func (uc *ObjectUseCase) History(ctx context.Context, id types.ObjectID) ([]*model.HistoryEntry, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := uc.getObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkVisible(ctx, obj, token); err != nil {
		return nil, err
	}

	entries, err := uc.repo.History().ListByObject(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list history", goerr.V(ObjectIDKey, id))
	}
	return entries, nil
}
