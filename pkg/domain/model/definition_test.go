package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func validDefinition() *model.ObjectDefinition {
	return &model.ObjectDefinition{
		ObjectType: "sales-lead",
		Label:      "Sales Lead",
		Properties: []model.PropertyDefinition{
			{Name: "name", Label: "Name", Component: types.ComponentText, Required: true, SummaryOrder: intPtr(1)},
			{Name: "email", Label: "Email", Component: types.ComponentEmail, SummaryOrder: intPtr(2)},
			{Name: "amount", Label: "Amount", Component: types.ComponentCurrency},
		},
		Stages: []model.KanbanStage{
			{ID: "new", Label: "New"},
			{ID: "qualified", Label: "Qualified", AllowRollback: boolPtr(false)},
			{ID: "won", Label: "Won", TotalizerField: "amount"},
		},
		DefaultBehaviors: model.BehaviorMap{
			"qualified": {"amount": types.BehaviorVisible},
		},
		IsActive: true,
	}
}

func TestObjectDefinition_Validate(t *testing.T) {
	t.Run("valid definition passes", func(t *testing.T) {
		gt.NoError(t, validDefinition().Validate())
	})

	t.Run("empty object type rejected", func(t *testing.T) {
		def := validDefinition()
		def.ObjectType = ""
		gt.Error(t, def.Validate())
	})

	t.Run("property without label rejected", func(t *testing.T) {
		def := validDefinition()
		def.Properties[0].Label = ""
		gt.Error(t, def.Validate())
	})

	t.Run("invalid component rejected", func(t *testing.T) {
		def := validDefinition()
		def.Properties[0].Component = "DateInput"
		gt.Error(t, def.Validate())
	})

	t.Run("duplicate property name rejected", func(t *testing.T) {
		def := validDefinition()
		def.Properties[1].Name = "name"
		def.Properties[1].SummaryOrder = nil
		gt.Error(t, def.Validate())
	})

	t.Run("duplicate summary order rejected", func(t *testing.T) {
		def := validDefinition()
		def.Properties[1].SummaryOrder = intPtr(1)
		gt.Error(t, def.Validate())
	})

	t.Run("non-positive summary order rejected", func(t *testing.T) {
		def := validDefinition()
		def.Properties[0].SummaryOrder = intPtr(0)
		gt.Error(t, def.Validate())
	})

	t.Run("duplicate stage ID rejected", func(t *testing.T) {
		def := validDefinition()
		def.Stages[1].ID = "new"
		gt.Error(t, def.Validate())
	})

	t.Run("stage without label rejected", func(t *testing.T) {
		def := validDefinition()
		def.Stages[0].Label = ""
		gt.Error(t, def.Validate())
	})

	t.Run("totalizer referencing unknown property rejected", func(t *testing.T) {
		def := validDefinition()
		def.Stages[2].TotalizerField = "budget"
		gt.Error(t, def.Validate())
	})

	t.Run("totalizer referencing non-currency property rejected", func(t *testing.T) {
		def := validDefinition()
		def.Stages[2].TotalizerField = "email"
		gt.Error(t, def.Validate())
	})

	t.Run("behavior referencing unknown stage rejected", func(t *testing.T) {
		def := validDefinition()
		def.DefaultBehaviors = model.BehaviorMap{
			"archived": {"amount": types.BehaviorVisible},
		}
		gt.Error(t, def.Validate())
	})

	t.Run("behavior referencing unknown property rejected", func(t *testing.T) {
		def := validDefinition()
		def.DefaultBehaviors = model.BehaviorMap{
			"new": {"budget": types.BehaviorVisible},
		}
		gt.Error(t, def.Validate())
	})
}

func TestObjectDefinition_StageIndex(t *testing.T) {
	def := validDefinition()

	gt.V(t, def.StageIndex("new")).Equal(0)
	gt.V(t, def.StageIndex("qualified")).Equal(1)
	gt.V(t, def.StageIndex("won")).Equal(2)
	gt.V(t, def.StageIndex("archived")).Equal(-1)
}

func TestKanbanStage_RollbackAllowed(t *testing.T) {
	def := validDefinition()

	newStage, ok := def.Stage("new")
	gt.B(t, ok).True()
	gt.B(t, newStage.RollbackAllowed()).True()

	qualified, ok := def.Stage("qualified")
	gt.B(t, ok).True()
	gt.B(t, qualified.RollbackAllowed()).False()
}

func TestObjectDefinition_DefaultBehavior(t *testing.T) {
	def := validDefinition()

	// Recorded behavior
	gt.V(t, def.DefaultBehavior("qualified", "amount")).Equal(types.BehaviorVisible)
	// Unrecorded pairs default to editable
	gt.V(t, def.DefaultBehavior("new", "amount")).Equal(types.BehaviorEditable)
	gt.V(t, def.DefaultBehavior("qualified", "name")).Equal(types.BehaviorEditable)
}
