package model_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
)

func objWithAmount(v any) *model.GenericObject {
	return &model.GenericObject{
		Properties: map[string]any{"amount": v},
	}
}

func TestComputeStageTotals(t *testing.T) {
	t.Run("aggregates numeric values", func(t *testing.T) {
		objects := []*model.GenericObject{
			objWithAmount(float64(100)),
			objWithAmount(float64(50)),
			objWithAmount(float64(200)),
		}

		totals := model.ComputeStageTotals(objects, "amount")
		gt.V(t, totals).NotNil()
		gt.V(t, totals.Highest).Equal(float64(200))
		gt.V(t, totals.Lowest).Equal(float64(50))
		gt.V(t, totals.Total).Equal(float64(350))
		gt.V(t, totals.Count).Equal(3)
		gt.B(t, math.Abs(totals.Average-116.67) < 0.01).True()
	})

	t.Run("empty stage has no totals", func(t *testing.T) {
		totals := model.ComputeStageTotals(nil, "amount")
		gt.B(t, totals == nil).True()
	})

	t.Run("non-numeric values are excluded, not zeroed", func(t *testing.T) {
		objects := []*model.GenericObject{
			objWithAmount("not a number"),
			objWithAmount(float64(10)),
			{Properties: map[string]any{}}, // missing
		}

		totals := model.ComputeStageTotals(objects, "amount")
		gt.V(t, totals).NotNil()
		gt.V(t, totals.Count).Equal(1)
		gt.V(t, totals.Total).Equal(float64(10))
		gt.V(t, totals.Average).Equal(float64(10))
	})

	t.Run("all non-numeric yields no totals", func(t *testing.T) {
		objects := []*model.GenericObject{
			objWithAmount("n/a"),
			objWithAmount(nil),
		}
		gt.B(t, model.ComputeStageTotals(objects, "amount") == nil).True()
	})

	t.Run("no totalizer field yields no totals", func(t *testing.T) {
		objects := []*model.GenericObject{objWithAmount(float64(10))}
		gt.B(t, model.ComputeStageTotals(objects, "") == nil).True()
	})

	t.Run("integer values are accepted", func(t *testing.T) {
		objects := []*model.GenericObject{
			objWithAmount(int64(5)),
			objWithAmount(int(7)),
		}
		totals := model.ComputeStageTotals(objects, "amount")
		gt.V(t, totals).NotNil()
		gt.V(t, totals.Total).Equal(float64(12))
	})
}
