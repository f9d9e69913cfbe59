package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type DashboardUseCase struct {
	repo interfaces.Repository
}

func NewDashboardUseCase(repo interfaces.Repository) *DashboardUseCase {
	return &DashboardUseCase{
		repo: repo,
	}
}

// DefinitionStats summarizes one object type for the dashboard
type DefinitionStats struct {
	Definition *model.ObjectDefinition
	Total      int
	ByStage    map[types.StageID]int
}

// Analytics is the dashboard overview: object counts per definition and
// per stage, counting only objects visible to the viewer
type Analytics struct {
	TotalDefinitions int
	TotalObjects     int
	Definitions      []*DefinitionStats
}

// Profile returns the signed-in user's account. In no-auth mode there is
// no stored account, so the session token itself is surfaced.
func (uc *DashboardUseCase) Profile(ctx context.Context) (*model.User, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	user, err := uc.repo.User().Get(ctx, token.Sub)
	if err != nil {
		return &model.User{
			ID:      token.Sub,
			Email:   token.Email,
			IsAdmin: token.IsAdmin,
		}, nil
	}
	return user, nil
}

func (uc *DashboardUseCase) Analytics(ctx context.Context) (*Analytics, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	definitions, err := uc.repo.Definition().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list definitions")
	}

	groupIDs, err := viewerGroupIDs(ctx, uc.repo, token)
	if err != nil {
		return nil, err
	}

	analytics := &Analytics{
		TotalDefinitions: len(definitions),
	}

	for _, def := range definitions {
		objects, err := uc.repo.Object().List(ctx, interfaces.WithDefinition(def.ID))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list objects", goerr.V(DefinitionIDKey, def.ID))
		}

		stats := &DefinitionStats{
			Definition: def,
			ByStage:    make(map[types.StageID]int, len(def.Stages)),
		}
		for _, obj := range objects {
			if !obj.VisibleTo(token.Sub, token.IsAdmin, groupIDs) {
				continue
			}
			stats.Total++
			stats.ByStage[obj.CurrentStageID]++
		}

		analytics.TotalObjects += stats.Total
		analytics.Definitions = append(analytics.Definitions, stats)
	}

	return analytics, nil
}
