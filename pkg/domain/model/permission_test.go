package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

func TestEffectiveBehavior(t *testing.T) {
	def := validDefinition()

	t.Run("override wins over default", func(t *testing.T) {
		override := model.BehaviorMap{
			"new": {"email": types.BehaviorInvisible},
		}
		gt.V(t, model.EffectiveBehavior(def, override, "new", "email")).Equal(types.BehaviorInvisible)
	})

	t.Run("falls back to definition default", func(t *testing.T) {
		gt.V(t, model.EffectiveBehavior(def, nil, "qualified", "amount")).Equal(types.BehaviorVisible)
	})

	t.Run("unrecorded pair is editable", func(t *testing.T) {
		gt.V(t, model.EffectiveBehavior(def, nil, "new", "name")).Equal(types.BehaviorEditable)
	})
}

func TestValidateOverride(t *testing.T) {
	def := validDefinition()

	t.Run("narrowing editable to invisible allowed", func(t *testing.T) {
		override := model.BehaviorMap{
			"new": {"email": types.BehaviorInvisible},
		}
		gt.NoError(t, model.ValidateOverride(def, override))
	})

	t.Run("keeping the default allowed", func(t *testing.T) {
		override := model.BehaviorMap{
			"qualified": {"amount": types.BehaviorVisible},
		}
		gt.NoError(t, model.ValidateOverride(def, override))
	})

	t.Run("loosening visible to editable rejected", func(t *testing.T) {
		// amount defaults to visible at qualified
		override := model.BehaviorMap{
			"qualified": {"amount": types.BehaviorEditable},
		}
		err := model.ValidateOverride(def, override)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, model.ErrInvalidOverride)).True()
	})

	t.Run("loosening invisible rejected", func(t *testing.T) {
		def := validDefinition()
		def.DefaultBehaviors.Set("won", "email", types.BehaviorInvisible)

		override := model.BehaviorMap{
			"won": {"email": types.BehaviorVisible},
		}
		err := model.ValidateOverride(def, override)
		gt.Error(t, err)
		gt.B(t, errors.Is(err, model.ErrInvalidOverride)).True()
	})

	t.Run("unknown stage rejected", func(t *testing.T) {
		override := model.BehaviorMap{
			"archived": {"email": types.BehaviorInvisible},
		}
		gt.Error(t, model.ValidateOverride(def, override))
	})

	t.Run("unknown property rejected", func(t *testing.T) {
		override := model.BehaviorMap{
			"new": {"budget": types.BehaviorInvisible},
		}
		gt.Error(t, model.ValidateOverride(def, override))
	})
}

func TestMergeOverrides(t *testing.T) {
	def := validDefinition()

	t.Run("no overrides yields defaults", func(t *testing.T) {
		behaviors := model.MergeOverrides(def, nil, "qualified")
		gt.V(t, behaviors["amount"]).Equal(types.BehaviorVisible)
		gt.V(t, behaviors["name"]).Equal(types.BehaviorEditable)
	})

	t.Run("most permissive group wins", func(t *testing.T) {
		restrictive := model.BehaviorMap{
			"new": {"email": types.BehaviorInvisible},
		}
		lenient := model.BehaviorMap{
			"new": {"email": types.BehaviorVisible},
		}
		behaviors := model.MergeOverrides(def, []model.BehaviorMap{restrictive, lenient}, "new")
		gt.V(t, behaviors["email"]).Equal(types.BehaviorVisible)
	})

	t.Run("union never exceeds the default", func(t *testing.T) {
		// Both groups keep the visible default for amount at qualified;
		// neither can raise it, so the merge stays visible.
		a := model.BehaviorMap{
			"qualified": {"amount": types.BehaviorInvisible},
		}
		b := model.BehaviorMap{
			"qualified": {"amount": types.BehaviorVisible},
		}
		behaviors := model.MergeOverrides(def, []model.BehaviorMap{a, b}, "qualified")
		gt.V(t, behaviors["amount"]).Equal(types.BehaviorVisible)
	})
}
