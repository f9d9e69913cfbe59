package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// EffectiveBehavior computes the behavior of a property at a stage after
// applying a group's override on top of the definition defaults. A missing
// override falls back to the default; a missing default is editable.
func EffectiveBehavior(def *ObjectDefinition, override BehaviorMap, stageID types.StageID, prop types.PropertyName) types.Behavior {
	if b, ok := override.Get(stageID, prop); ok {
		return b
	}
	return def.DefaultBehavior(stageID, prop)
}

// EffectiveBehaviors resolves the behavior of every property of the
// definition at the given stage for one override map
func EffectiveBehaviors(def *ObjectDefinition, override BehaviorMap, stageID types.StageID) map[types.PropertyName]types.Behavior {
	result := make(map[types.PropertyName]types.Behavior, len(def.Properties))
	for _, p := range def.Properties {
		result[p.Name] = EffectiveBehavior(def, override, stageID, p.Name)
	}
	return result
}

// MergeOverrides combines the overrides of several groups into the behaviors
// one viewer sees: for each (stage, property) pair the most permissive value
// among the groups wins. The result is still capped by the definition
// defaults because each individual override passed ValidateOverride.
func MergeOverrides(def *ObjectDefinition, overrides []BehaviorMap, stageID types.StageID) map[types.PropertyName]types.Behavior {
	if len(overrides) == 0 {
		return EffectiveBehaviors(def, nil, stageID)
	}

	result := make(map[types.PropertyName]types.Behavior, len(def.Properties))
	for _, p := range def.Properties {
		best := EffectiveBehavior(def, overrides[0], stageID, p.Name)
		for _, override := range overrides[1:] {
			if b := EffectiveBehavior(def, override, stageID, p.Name); b.MorePermissiveThan(best) {
				best = b
			}
		}
		result[p.Name] = best
	}
	return result
}

// ValidateOverride checks the narrowing rule for a requested group override:
// for every (stage, property) pair the requested behavior must be no more
// permissive than the definition's default for that pair. It also rejects
// entries referencing unknown stages or properties.
func ValidateOverride(def *ObjectDefinition, requested BehaviorMap) error {
	for stageID, props := range requested {
		if _, ok := def.Stage(stageID); !ok {
			return goerr.Wrap(ErrInvalidDefinition, "override references unknown stage",
				goerr.V(StageIDKey, stageID))
		}
		for prop, b := range props {
			if _, ok := def.Property(prop); !ok {
				return goerr.Wrap(ErrInvalidDefinition, "override references unknown property",
					goerr.V(StageIDKey, stageID), goerr.V(PropertyKey, prop))
			}
			if !b.IsValid() {
				return goerr.Wrap(ErrInvalidDefinition, "invalid behavior in override",
					goerr.V(StageIDKey, stageID), goerr.V(PropertyKey, prop),
					goerr.V(RequestedValueKey, b))
			}

			ceiling := def.DefaultBehavior(stageID, prop)
			if !b.NoMorePermissiveThan(ceiling) {
				return goerr.Wrap(ErrInvalidOverride, "group override may only narrow the default behavior",
					goerr.V(StageIDKey, stageID),
					goerr.V(PropertyKey, prop),
					goerr.V(RequestedValueKey, b),
					goerr.V(AllowedCeilingKey, ceiling))
			}
		}
	}
	return nil
}
