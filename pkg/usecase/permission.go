package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// viewerGroupIDs returns the IDs of the groups the token's user belongs to
func viewerGroupIDs(ctx context.Context, repo interfaces.Repository, token *auth.Token) ([]types.GroupID, error) {
	groups, err := repo.Group().ListByUser(ctx, token.Sub)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list viewer groups", goerr.V(UserIDKey, token.Sub))
	}

	ids := make([]types.GroupID, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids, nil
}

// viewerOverrides collects the permission overrides that apply to the
// token's user for one definition. Administrators and the object creator
// see the definition defaults, so callers skip this for them.
func viewerOverrides(ctx context.Context, repo interfaces.Repository, def *model.ObjectDefinition, token *auth.Token) ([]model.BehaviorMap, error) {
	groupIDs, err := viewerGroupIDs(ctx, repo, token)
	if err != nil {
		return nil, err
	}
	if len(groupIDs) == 0 {
		return nil, nil
	}

	assignments, err := repo.DefinitionGroup().ListByDefinition(ctx, def.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list group assignments", goerr.V(DefinitionIDKey, def.ID))
	}

	member := make(map[types.GroupID]bool, len(groupIDs))
	for _, id := range groupIDs {
		member[id] = true
	}

	var overrides []model.BehaviorMap
	for _, a := range assignments {
		if member[a.GroupID] && a.Permissions != nil {
			overrides = append(overrides, a.Permissions)
		}
	}
	return overrides, nil
}

// resolveBehaviors computes the per-property behaviors one viewer sees at
// a stage. Administrators and the creator get the definition defaults;
// everyone else gets the most permissive value among their groups'
// overrides, capped by the defaults.
func resolveBehaviors(ctx context.Context, repo interfaces.Repository, def *model.ObjectDefinition, token *auth.Token, creatorID types.UserID, stageID types.StageID) (map[types.PropertyName]types.Behavior, error) {
	if token.IsAdmin || (creatorID != "" && token.Sub == creatorID) {
		return model.EffectiveBehaviors(def, nil, stageID), nil
	}

	overrides, err := viewerOverrides(ctx, repo, def, token)
	if err != nil {
		return nil, err
	}
	return model.MergeOverrides(def, overrides, stageID), nil
}
