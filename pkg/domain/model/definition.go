package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/types"
)

// PropertyDefinition defines one field of an object type
type PropertyDefinition struct {
	Name         types.PropertyName
	Label        string
	Component    types.Component
	Required     bool
	SummaryOrder *int // optional card-summary position, unique across a definition
}

// KanbanStage is a named step in an object type's workflow. Stage order is
// the definition's sequence order and is meaningful: rollback and adjacent
// moves depend on it.
type KanbanStage struct {
	ID             types.StageID
	Label          string
	TotalizerField types.PropertyName // optional, must reference a Currency property
	AllowRollback  *bool              // nil means true
}

// RollbackAllowed reports whether objects may leave this stage backwards
func (s *KanbanStage) RollbackAllowed() bool {
	return s.AllowRollback == nil || *s.AllowRollback
}

// BehaviorMap maps (stage, property) pairs to a Behavior
type BehaviorMap map[types.StageID]map[types.PropertyName]types.Behavior

// Get returns the behavior recorded for the pair, if any
func (m BehaviorMap) Get(stageID types.StageID, prop types.PropertyName) (types.Behavior, bool) {
	if m == nil {
		return "", false
	}
	props, ok := m[stageID]
	if !ok {
		return "", false
	}
	b, ok := props[prop]
	return b, ok
}

// Set records a behavior for the pair, allocating nested maps as needed
func (m BehaviorMap) Set(stageID types.StageID, prop types.PropertyName, b types.Behavior) {
	props, ok := m[stageID]
	if !ok {
		props = make(map[types.PropertyName]types.Behavior)
		m[stageID] = props
	}
	props[prop] = b
}

// Clone returns a deep copy of the map
func (m BehaviorMap) Clone() BehaviorMap {
	if m == nil {
		return nil
	}
	cloned := make(BehaviorMap, len(m))
	for stageID, props := range m {
		copied := make(map[types.PropertyName]types.Behavior, len(props))
		for prop, b := range props {
			copied[prop] = b
		}
		cloned[stageID] = copied
	}
	return cloned
}

// ObjectDefinition is the schema for a user-defined entity type: its
// properties and its Kanban workflow. It owns its properties and stages.
type ObjectDefinition struct {
	ID               types.DefinitionID
	ObjectType       types.ObjectType // immutable after creation
	Label            string
	Properties       []PropertyDefinition
	Stages           []KanbanStage
	DefaultBehaviors BehaviorMap
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the structural invariants of the definition
func (d *ObjectDefinition) Validate() error {
	if err := d.ObjectType.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidDefinition, "invalid object type", goerr.V("objectType", d.ObjectType))
	}
	if d.Label == "" {
		return goerr.Wrap(ErrInvalidDefinition, "definition label is required", goerr.V("objectType", d.ObjectType))
	}
	if len(d.Properties) == 0 {
		return goerr.Wrap(ErrInvalidDefinition, "definition requires at least one property", goerr.V("objectType", d.ObjectType))
	}
	if len(d.Stages) == 0 {
		return goerr.Wrap(ErrInvalidDefinition, "definition requires at least one stage", goerr.V("objectType", d.ObjectType))
	}

	propNames := make(map[types.PropertyName]bool, len(d.Properties))
	summaryOrders := make(map[int]types.PropertyName)
	for _, p := range d.Properties {
		if err := p.Name.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidDefinition, "invalid property name", goerr.V("property", p.Name))
		}
		if p.Label == "" {
			return goerr.Wrap(ErrInvalidDefinition, "property label is required", goerr.V("property", p.Name))
		}
		if !p.Component.IsValid() {
			return goerr.Wrap(ErrInvalidDefinition, "invalid property component",
				goerr.V("property", p.Name), goerr.V("component", p.Component))
		}
		if propNames[p.Name] {
			return goerr.Wrap(ErrInvalidDefinition, "duplicate property name", goerr.V("property", p.Name))
		}
		propNames[p.Name] = true

		if p.SummaryOrder != nil {
			if *p.SummaryOrder <= 0 {
				return goerr.Wrap(ErrInvalidDefinition, "summary order must be positive",
					goerr.V("property", p.Name), goerr.V("summaryOrder", *p.SummaryOrder))
			}
			if other, exists := summaryOrders[*p.SummaryOrder]; exists {
				return goerr.Wrap(ErrInvalidDefinition, "duplicate summary order",
					goerr.V("property", p.Name), goerr.V("conflictsWith", other),
					goerr.V("summaryOrder", *p.SummaryOrder))
			}
			summaryOrders[*p.SummaryOrder] = p.Name
		}
	}

	stageIDs := make(map[types.StageID]bool, len(d.Stages))
	for _, s := range d.Stages {
		if err := s.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidDefinition, "invalid stage ID", goerr.V("stageId", s.ID))
		}
		if s.Label == "" {
			return goerr.Wrap(ErrInvalidDefinition, "stage label is required", goerr.V("stageId", s.ID))
		}
		if stageIDs[s.ID] {
			return goerr.Wrap(ErrInvalidDefinition, "duplicate stage ID", goerr.V("stageId", s.ID))
		}
		stageIDs[s.ID] = true

		if s.TotalizerField != "" {
			prop, ok := d.Property(s.TotalizerField)
			if !ok {
				return goerr.Wrap(ErrInvalidDefinition, "totalizer field references unknown property",
					goerr.V("stageId", s.ID), goerr.V("property", s.TotalizerField))
			}
			if prop.Component != types.ComponentCurrency {
				return goerr.Wrap(ErrInvalidDefinition, "totalizer field must be a currency property",
					goerr.V("stageId", s.ID), goerr.V("property", s.TotalizerField),
					goerr.V("component", prop.Component))
			}
		}
	}

	for stageID, props := range d.DefaultBehaviors {
		if !stageIDs[stageID] {
			return goerr.Wrap(ErrInvalidDefinition, "behavior references unknown stage", goerr.V("stageId", stageID))
		}
		for prop, b := range props {
			if !propNames[prop] {
				return goerr.Wrap(ErrInvalidDefinition, "behavior references unknown property",
					goerr.V("stageId", stageID), goerr.V("property", prop))
			}
			if !b.IsValid() {
				return goerr.Wrap(ErrInvalidDefinition, "invalid behavior",
					goerr.V("stageId", stageID), goerr.V("property", prop), goerr.V("behavior", b))
			}
		}
	}

	return nil
}

// StageIndex returns the position of a stage in the definition's declared
// order, or -1 when the stage is unknown
func (d *ObjectDefinition) StageIndex(stageID types.StageID) int {
	for i, s := range d.Stages {
		if s.ID == stageID {
			return i
		}
	}
	return -1
}

// Stage looks up a stage by ID
func (d *ObjectDefinition) Stage(stageID types.StageID) (*KanbanStage, bool) {
	for i := range d.Stages {
		if d.Stages[i].ID == stageID {
			return &d.Stages[i], true
		}
	}
	return nil, false
}

// Property looks up a property by name
func (d *ObjectDefinition) Property(name types.PropertyName) (*PropertyDefinition, bool) {
	for i := range d.Properties {
		if d.Properties[i].Name == name {
			return &d.Properties[i], true
		}
	}
	return nil, false
}

// DefaultBehavior returns the definition's baseline behavior for the pair.
// An unrecorded pair defaults to editable.
func (d *ObjectDefinition) DefaultBehavior(stageID types.StageID, prop types.PropertyName) types.Behavior {
	if b, ok := d.DefaultBehaviors.Get(stageID, prop); ok {
		return b
	}
	return types.DefaultBehavior
}
