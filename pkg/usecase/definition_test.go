package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func adminContext() context.Context {
	token := auth.NewToken("admin-user", "admin@example.com", true, time.Hour)
	return auth.ContextWithToken(context.Background(), token)
}

func userContext(sub types.UserID) context.Context {
	token := auth.NewToken(sub, string(sub)+"@example.com", false, time.Hour)
	return auth.ContextWithToken(context.Background(), token)
}

func boolPtr(b bool) *bool { return &b }

// dealDefinition is a three-stage workflow with a totalizer on the final
// stage and rollback blocked out of it
func dealDefinition() *model.ObjectDefinition {
	return &model.ObjectDefinition{
		ObjectType: "deal",
		Label:      "Deal",
		Properties: []model.PropertyDefinition{
			{Name: "name", Label: "Name", Component: types.ComponentText, Required: true},
			{Name: "email", Label: "Email", Component: types.ComponentEmail},
			{Name: "amount", Label: "Amount", Component: types.ComponentCurrency},
			{Name: "notes", Label: "Notes", Component: types.ComponentText},
		},
		Stages: []model.KanbanStage{
			{ID: "new", Label: "New"},
			{ID: "qualified", Label: "Qualified"},
			{ID: "won", Label: "Won", TotalizerField: "amount", AllowRollback: boolPtr(false)},
		},
		IsActive: true,
	}
}

func TestDefinitionUseCase_Create(t *testing.T) {
	t.Run("create valid definition", func(t *testing.T) {
		uc := usecase.New(memory.New())

		created, err := uc.Definition.Create(adminContext(), dealDefinition())
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(types.DefinitionID(""))
		gt.Value(t, created.ObjectType).Equal(types.ObjectType("deal"))
	})

	t.Run("create requires administrator", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Definition.Create(userContext("alice"), dealDefinition())
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})

	t.Run("create without stages fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		def := dealDefinition()
		def.Stages = nil
		_, err := uc.Definition.Create(adminContext(), def)
		gt.Error(t, err).Is(model.ErrInvalidDefinition)
	})

	t.Run("duplicate object type fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		_, err := uc.Definition.Create(ctx, dealDefinition())
		gt.NoError(t, err).Required()

		_, err = uc.Definition.Create(ctx, dealDefinition())
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("totalizer on non-currency property fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		def := dealDefinition()
		def.Stages[2].TotalizerField = "name"
		_, err := uc.Definition.Create(adminContext(), def)
		gt.Error(t, err).Is(model.ErrInvalidDefinition)
	})
}

func TestDefinitionUseCase_Update(t *testing.T) {
	t.Run("object type is immutable", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		created, err := uc.Definition.Create(ctx, dealDefinition())
		gt.NoError(t, err).Required()

		created.ObjectType = "renamed"
		created.Label = "Renamed Deal"
		updated, err := uc.Definition.Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.ObjectType).Equal(types.ObjectType("deal"))
		gt.Value(t, updated.Label).Equal("Renamed Deal")
	})

	t.Run("update unknown definition fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		def := dealDefinition()
		def.ID = "missing"
		_, err := uc.Definition.Update(adminContext(), def)
		gt.Error(t, err).Is(usecase.ErrDefinitionNotFound)
	})
}

func TestDefinitionUseCase_GroupPermissions(t *testing.T) {
	setup := func(t *testing.T) (*usecase.UseCases, context.Context, *model.ObjectDefinition, *model.Group) {
		t.Helper()
		uc := usecase.New(memory.New())
		ctx := adminContext()

		def, err := uc.Definition.Create(ctx, dealDefinition())
		gt.NoError(t, err).Required()
		group, err := uc.Group.Create(ctx, "sales")
		gt.NoError(t, err).Required()

		_, err = uc.Definition.AssignGroup(ctx, def.ID, group.ID)
		gt.NoError(t, err).Required()

		return uc, ctx, def, group
	}

	t.Run("assigning twice fails", func(t *testing.T) {
		uc, ctx, def, group := setup(t)

		_, err := uc.Definition.AssignGroup(ctx, def.ID, group.ID)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("narrowing override is stored", func(t *testing.T) {
		uc, ctx, def, group := setup(t)

		permissions := model.BehaviorMap{}
		permissions.Set("new", "amount", types.BehaviorVisible)

		updated, err := uc.Definition.UpdateGroupPermissions(ctx, def.ID, group.ID, permissions)
		gt.NoError(t, err).Required()

		b, ok := updated.Permissions.Get("new", "amount")
		gt.Bool(t, ok).True()
		gt.Value(t, b).Equal(types.BehaviorVisible)
	})

	t.Run("loosening override is rejected", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		// A definition where the default is already narrowed
		narrowed := dealDefinition()
		narrowed.ObjectType = "narrow-deal"
		narrowed.DefaultBehaviors = model.BehaviorMap{}
		narrowed.DefaultBehaviors.Set("new", "amount", types.BehaviorVisible)
		def, err := uc.Definition.Create(ctx, narrowed)
		gt.NoError(t, err).Required()

		group, err := uc.Group.Create(ctx, "managers")
		gt.NoError(t, err).Required()
		_, err = uc.Definition.AssignGroup(ctx, def.ID, group.ID)
		gt.NoError(t, err).Required()

		permissions := model.BehaviorMap{}
		permissions.Set("new", "amount", types.BehaviorEditable)

		_, err = uc.Definition.UpdateGroupPermissions(ctx, def.ID, group.ID, permissions)
		gt.Error(t, err).Is(model.ErrInvalidOverride)
	})

	t.Run("override for unknown property is rejected", func(t *testing.T) {
		uc, ctx, def, group := setup(t)

		permissions := model.BehaviorMap{}
		permissions.Set("new", "no-such-property", types.BehaviorInvisible)

		_, err := uc.Definition.UpdateGroupPermissions(ctx, def.ID, group.ID, permissions)
		gt.Error(t, err).Is(model.ErrInvalidDefinition)
	})

	t.Run("remove group assignment", func(t *testing.T) {
		uc, ctx, def, group := setup(t)

		gt.NoError(t, uc.Definition.RemoveGroup(ctx, def.ID, group.ID)).Required()

		assignments, err := uc.Definition.ListGroups(ctx, def.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, assignments).Length(0)
	})
}
