package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/errs"
)

type BoardUseCase struct {
	repo interfaces.Repository
}

func NewBoardUseCase(repo interfaces.Repository) *BoardUseCase {
	return &BoardUseCase{
		repo: repo,
	}
}

// Board is the Kanban view of one object type: a column per stage in
// definition order
type Board struct {
	Definition *model.ObjectDefinition
	Columns    []*model.BoardColumn
}

// Get builds the board for one object type. Objects the viewer may not
// see are left out of the columns and out of the totals; objects in a
// stage the definition no longer declares are omitted entirely.
func (uc *BoardUseCase) Get(ctx context.Context, objectType types.ObjectType) (*Board, error) {
	token, err := sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	def, err := uc.repo.Definition().GetByType(ctx, objectType)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, goerr.Wrap(ErrDefinitionNotFound, "definition not found", goerr.V(ObjectTypeKey, objectType))
		}
		return nil, goerr.Wrap(err, "failed to get definition", goerr.V(ObjectTypeKey, objectType))
	}

	var (
		objects  []*model.GenericObject
		groupIDs []types.GroupID
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		objects, err = uc.repo.Object().List(egCtx, interfaces.WithDefinition(def.ID))
		if err != nil {
			return goerr.Wrap(err, "failed to list objects", goerr.V(DefinitionIDKey, def.ID))
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		groupIDs, err = viewerGroupIDs(egCtx, uc.repo, token)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	byStage := make(map[types.StageID][]*model.GenericObject)
	for _, obj := range objects {
		if !obj.VisibleTo(token.Sub, token.IsAdmin, groupIDs) {
			continue
		}
		byStage[obj.CurrentStageID] = append(byStage[obj.CurrentStageID], obj)
	}

	columns := make([]*model.BoardColumn, len(def.Stages))
	for i, stage := range def.Stages {
		stageObjects := byStage[stage.ID]
		columns[i] = &model.BoardColumn{
			Stage:   stage,
			Objects: stageObjects,
			Totals:  model.ComputeStageTotals(stageObjects, stage.TotalizerField),
		}
	}

	return &Board{
		Definition: def,
		Columns:    columns,
	}, nil
}
