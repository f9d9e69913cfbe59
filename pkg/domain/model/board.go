package model

import (
	"encoding/json"
	"math"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// StageTotals is the aggregate of one Currency property over the objects
// currently in a stage. It exists only when at least one object carries a
// numeric value for the totalizer field; an empty stage has no totals,
// not zeros.
type StageTotals struct {
	Highest float64
	Lowest  float64
	Total   float64
	Average float64
	Count   int
}

// BoardColumn is one stage column of the Kanban board view
type BoardColumn struct {
	Stage   KanbanStage
	Objects []*GenericObject
	Totals  *StageTotals
}

// NumericPropertyValue extracts a numeric value from a raw property value.
// JSON decoding yields float64, repositories may round-trip other numeric
// types; everything else (missing, strings, booleans) is excluded from
// aggregates rather than treated as zero.
func NumericPropertyValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ComputeStageTotals aggregates the totalizer field of a stage over the
// given objects. Returns nil when no object carries a numeric value.
func ComputeStageTotals(objects []*GenericObject, field types.PropertyName) *StageTotals {
	if field == "" {
		return nil
	}

	totals := &StageTotals{
		Highest: math.Inf(-1),
		Lowest:  math.Inf(1),
	}
	for _, obj := range objects {
		raw, ok := obj.Properties[field.String()]
		if !ok {
			continue
		}
		v, ok := NumericPropertyValue(raw)
		if !ok {
			continue
		}
		totals.Total += v
		totals.Count++
		if v > totals.Highest {
			totals.Highest = v
		}
		if v < totals.Lowest {
			totals.Lowest = v
		}
	}

	if totals.Count == 0 {
		return nil
	}
	totals.Average = totals.Total / float64(totals.Count)
	return totals
}
