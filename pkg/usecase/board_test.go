package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func TestBoardUseCase_Get(t *testing.T) {
	createDeal := func(t *testing.T, uc *usecase.UseCases, ctx context.Context, stage types.StageID, amount any) {
		t.Helper()
		props := map[string]any{"name": "Acme"}
		if amount != nil {
			props["amount"] = amount
		}
		_, err := uc.Object.Create(ctx, &usecase.CreateObjectInput{
			ObjectType: "deal",
			StageID:    stage,
			Properties: props,
		})
		gt.NoError(t, err).Required()
	}

	t.Run("columns follow stage order and aggregate the totalizer", func(t *testing.T) {
		uc := setupDeal(t)
		ctx := userContext("alice")

		createDeal(t, uc, ctx, "new", nil)
		createDeal(t, uc, ctx, "won", 100.0)
		createDeal(t, uc, ctx, "won", 250.5)

		board, err := uc.Board.Get(ctx, "deal")
		gt.NoError(t, err).Required()
		gt.Array(t, board.Columns).Length(3)

		gt.Value(t, board.Columns[0].Stage.ID).Equal(types.StageID("new"))
		gt.Value(t, board.Columns[1].Stage.ID).Equal(types.StageID("qualified"))
		gt.Value(t, board.Columns[2].Stage.ID).Equal(types.StageID("won"))

		won := board.Columns[2]
		gt.Array(t, won.Objects).Length(2)
		gt.Value(t, won.Totals).NotNil()
		gt.Value(t, won.Totals.Count).Equal(2)
		gt.Value(t, won.Totals.Total).Equal(350.5)
		gt.Value(t, won.Totals.Highest).Equal(250.5)
		gt.Value(t, won.Totals.Lowest).Equal(100.0)
		gt.Value(t, won.Totals.Average).Equal(175.25)
	})

	t.Run("an empty stage has no totals", func(t *testing.T) {
		uc := setupDeal(t)
		ctx := userContext("alice")

		board, err := uc.Board.Get(ctx, "deal")
		gt.NoError(t, err).Required()

		gt.Array(t, board.Columns[2].Objects).Length(0)
		gt.Value(t, board.Columns[2].Totals).Nil()
	})

	t.Run("non-numeric totalizer values are excluded", func(t *testing.T) {
		uc := setupDeal(t)
		ctx := userContext("alice")

		createDeal(t, uc, ctx, "won", "not a number")
		createDeal(t, uc, ctx, "won", 80.0)

		board, err := uc.Board.Get(ctx, "deal")
		gt.NoError(t, err).Required()

		won := board.Columns[2]
		gt.Array(t, won.Objects).Length(2)
		gt.Value(t, won.Totals.Count).Equal(1)
		gt.Value(t, won.Totals.Total).Equal(80.0)
	})

	t.Run("stages without a totalizer field have no totals", func(t *testing.T) {
		uc := setupDeal(t)
		ctx := userContext("alice")

		createDeal(t, uc, ctx, "new", 100.0)

		board, err := uc.Board.Get(ctx, "deal")
		gt.NoError(t, err).Required()
		gt.Array(t, board.Columns[0].Objects).Length(1)
		gt.Value(t, board.Columns[0].Totals).Nil()
	})

	t.Run("invisible objects stay out of columns and totals", func(t *testing.T) {
		uc := setupDeal(t)
		alice := userContext("alice")

		createDeal(t, uc, alice, "won", 100.0)

		board, err := uc.Board.Get(userContext("bob"), "deal")
		gt.NoError(t, err).Required()
		gt.Array(t, board.Columns[2].Objects).Length(0)
		gt.Value(t, board.Columns[2].Totals).Nil()
	})

	t.Run("objects in a removed stage are omitted", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := adminContext()

		def, err := uc.Definition.Create(ctx, dealDefinition())
		gt.NoError(t, err).Required()

		// A leftover from before the stage was removed from the definition
		_, err = repo.Object().Create(context.Background(), &model.GenericObject{
			ObjectDefinitionID: def.ID,
			CurrentStageID:     "legacy",
			Properties:         map[string]any{"name": "Old"},
			Visibility:         types.VisibilityPublic,
			CreatedByID:        "alice",
		})
		gt.NoError(t, err).Required()

		board, err := uc.Board.Get(ctx, "deal")
		gt.NoError(t, err).Required()
		for _, col := range board.Columns {
			gt.Array(t, col.Objects).Length(0)
		}
	})

	t.Run("unknown object type fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Board.Get(userContext("alice"), "no-such-type")
		gt.Error(t, err).Is(usecase.ErrDefinitionNotFound)
	})
}
