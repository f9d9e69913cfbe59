package http

import (
	"time"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
)

// The wire types keep the JSON contract independent of the domain model:
// typed ID maps flatten to plain strings and internal fields stay out.

type behaviorMapDTO map[string]map[string]string

func behaviorMapToDTO(m model.BehaviorMap) behaviorMapDTO {
	if len(m) == 0 {
		return nil
	}
	out := make(behaviorMapDTO, len(m))
	for stageID, props := range m {
		entry := make(map[string]string, len(props))
		for prop, b := range props {
			entry[prop.String()] = b.String()
		}
		out[stageID.String()] = entry
	}
	return out
}

func behaviorMapFromDTO(in behaviorMapDTO) model.BehaviorMap {
	if len(in) == 0 {
		return nil
	}
	out := make(model.BehaviorMap, len(in))
	for stageID, props := range in {
		for prop, b := range props {
			out.Set(types.StageID(stageID), types.PropertyName(prop), types.Behavior(b))
		}
	}
	return out
}

type propertyDTO struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Component    string `json:"component"`
	Required     bool   `json:"required,omitempty"`
	SummaryOrder *int   `json:"summaryOrder,omitempty"`
}

type stageDTO struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	TotalizerField string `json:"totalizerField,omitempty"`
	AllowRollback  *bool  `json:"allowRollback,omitempty"`
}

type definitionDTO struct {
	ID               string         `json:"id"`
	ObjectType       string         `json:"objectType"`
	Label            string         `json:"label"`
	Properties       []propertyDTO  `json:"properties"`
	Stages           []stageDTO     `json:"stages"`
	DefaultBehaviors behaviorMapDTO `json:"defaultBehaviors,omitempty"`
	IsActive         bool           `json:"isActive"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

func definitionToDTO(def *model.ObjectDefinition) definitionDTO {
	properties := make([]propertyDTO, len(def.Properties))
	for i, p := range def.Properties {
		properties[i] = propertyDTO{
			Name:         p.Name.String(),
			Label:        p.Label,
			Component:    p.Component.String(),
			Required:     p.Required,
			SummaryOrder: p.SummaryOrder,
		}
	}
	stages := make([]stageDTO, len(def.Stages))
	for i, s := range def.Stages {
		stages[i] = stageDTO{
			ID:             s.ID.String(),
			Label:          s.Label,
			TotalizerField: s.TotalizerField.String(),
			AllowRollback:  s.AllowRollback,
		}
	}
	return definitionDTO{
		ID:               def.ID.String(),
		ObjectType:       def.ObjectType.String(),
		Label:            def.Label,
		Properties:       properties,
		Stages:           stages,
		DefaultBehaviors: behaviorMapToDTO(def.DefaultBehaviors),
		IsActive:         def.IsActive,
		CreatedAt:        def.CreatedAt,
		UpdatedAt:        def.UpdatedAt,
	}
}

func definitionFromDTO(in definitionDTO) *model.ObjectDefinition {
	properties := make([]model.PropertyDefinition, len(in.Properties))
	for i, p := range in.Properties {
		properties[i] = model.PropertyDefinition{
			Name:         types.PropertyName(p.Name),
			Label:        p.Label,
			Component:    types.Component(p.Component),
			Required:     p.Required,
			SummaryOrder: p.SummaryOrder,
		}
	}
	stages := make([]model.KanbanStage, len(in.Stages))
	for i, s := range in.Stages {
		stages[i] = model.KanbanStage{
			ID:             types.StageID(s.ID),
			Label:          s.Label,
			TotalizerField: types.PropertyName(s.TotalizerField),
			AllowRollback:  s.AllowRollback,
		}
	}
	return &model.ObjectDefinition{
		ID:               types.DefinitionID(in.ID),
		ObjectType:       types.ObjectType(in.ObjectType),
		Label:            in.Label,
		Properties:       properties,
		Stages:           stages,
		DefaultBehaviors: behaviorMapFromDTO(in.DefaultBehaviors),
		IsActive:         in.IsActive,
	}
}

type definitionGroupDTO struct {
	ID                 string         `json:"id"`
	ObjectDefinitionID string         `json:"objectDefinitionId"`
	GroupID            string         `json:"groupId"`
	Permissions        behaviorMapDTO `json:"permissions,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

func definitionGroupToDTO(a *model.DefinitionGroup) definitionGroupDTO {
	return definitionGroupDTO{
		ID:                 a.ID,
		ObjectDefinitionID: a.ObjectDefinitionID.String(),
		GroupID:            a.GroupID.String(),
		Permissions:        behaviorMapToDTO(a.Permissions),
		CreatedAt:          a.CreatedAt,
	}
}

type objectDTO struct {
	ID                 string         `json:"id"`
	ObjectDefinitionID string         `json:"objectDefinitionId"`
	CurrentStageID     string         `json:"currentStageId"`
	Properties         map[string]any `json:"properties"`
	Visibility         string         `json:"visibility"`
	SharedWithGroupIDs []string       `json:"sharedWithGroupIds,omitempty"`
	SharedWithUserIDs  []string       `json:"sharedWithUserIds,omitempty"`
	CreatedByID        string         `json:"createdById"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func objectToDTO(obj *model.GenericObject) objectDTO {
	groupIDs := make([]string, len(obj.SharedWithGroupIDs))
	for i, id := range obj.SharedWithGroupIDs {
		groupIDs[i] = id.String()
	}
	userIDs := make([]string, len(obj.SharedWithUserIDs))
	for i, id := range obj.SharedWithUserIDs {
		userIDs[i] = id.String()
	}
	return objectDTO{
		ID:                 obj.ID.String(),
		ObjectDefinitionID: obj.ObjectDefinitionID.String(),
		CurrentStageID:     obj.CurrentStageID.String(),
		Properties:         obj.Properties,
		Visibility:         obj.Visibility.String(),
		SharedWithGroupIDs: groupIDs,
		SharedWithUserIDs:  userIDs,
		CreatedByID:        obj.CreatedByID.String(),
		CreatedAt:          obj.CreatedAt,
		UpdatedAt:          obj.UpdatedAt,
	}
}

func objectsToDTO(objects []*model.GenericObject) []objectDTO {
	out := make([]objectDTO, len(objects))
	for i, obj := range objects {
		out[i] = objectToDTO(obj)
	}
	return out
}

type objectDetailDTO struct {
	Object     objectDTO         `json:"object"`
	Definition definitionDTO     `json:"definition"`
	Behaviors  map[string]string `json:"behaviors"`
}

func objectDetailToDTO(detail *usecase.ObjectDetail) objectDetailDTO {
	behaviors := make(map[string]string, len(detail.Behaviors))
	for prop, b := range detail.Behaviors {
		behaviors[prop.String()] = b.String()
	}
	return objectDetailDTO{
		Object:     objectToDTO(detail.Object),
		Definition: definitionToDTO(detail.Definition),
		Behaviors:  behaviors,
	}
}

type propertyChangeDTO struct {
	Old any `json:"old"`
	New any `json:"new"`
}

type historyEntryDTO struct {
	ID              string                       `json:"id"`
	ObjectID        string                       `json:"objectId"`
	ChangeType      string                       `json:"changeType"`
	PreviousStageID string                       `json:"previousStageId,omitempty"`
	NewStageID      string                       `json:"newStageId"`
	Changes         map[string]propertyChangeDTO `json:"changes,omitempty"`
	ChangedByID     string                       `json:"changedById"`
	CreatedAt       time.Time                    `json:"createdAt"`
}

func historyEntryToDTO(e *model.HistoryEntry) historyEntryDTO {
	var changes map[string]propertyChangeDTO
	if len(e.Changes) > 0 {
		changes = make(map[string]propertyChangeDTO, len(e.Changes))
		for prop, c := range e.Changes {
			changes[prop] = propertyChangeDTO{Old: c.Old, New: c.New}
		}
	}
	return historyEntryDTO{
		ID:              e.ID,
		ObjectID:        e.ObjectID.String(),
		ChangeType:      e.ChangeType.String(),
		PreviousStageID: e.PreviousStageID.String(),
		NewStageID:      e.NewStageID.String(),
		Changes:         changes,
		ChangedByID:     e.ChangedByID.String(),
		CreatedAt:       e.CreatedAt,
	}
}

type stageTotalsDTO struct {
	Highest float64 `json:"highest"`
	Lowest  float64 `json:"lowest"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type boardColumnDTO struct {
	Stage   stageDTO        `json:"stage"`
	Objects []objectDTO     `json:"objects"`
	Count   int             `json:"count"`
	Totals  *stageTotalsDTO `json:"totals,omitempty"`
}

type boardDTO struct {
	Definition definitionDTO    `json:"definition"`
	Columns    []boardColumnDTO `json:"columns"`
}

func boardToDTO(board *usecase.Board) boardDTO {
	columns := make([]boardColumnDTO, len(board.Columns))
	for i, col := range board.Columns {
		dto := boardColumnDTO{
			Stage: stageDTO{
				ID:             col.Stage.ID.String(),
				Label:          col.Stage.Label,
				TotalizerField: col.Stage.TotalizerField.String(),
				AllowRollback:  col.Stage.AllowRollback,
			},
			Objects: objectsToDTO(col.Objects),
			Count:   len(col.Objects),
		}
		if col.Totals != nil {
			dto.Totals = &stageTotalsDTO{
				Highest: col.Totals.Highest,
				Lowest:  col.Totals.Lowest,
				Total:   col.Totals.Total,
				Average: col.Totals.Average,
				Count:   col.Totals.Count,
			}
		}
		columns[i] = dto
	}
	return boardDTO{
		Definition: definitionToDTO(board.Definition),
		Columns:    columns,
	}
}

type groupDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UserIDs     []string  `json:"userIds"`
	EndpointIDs []string  `json:"endpointIds"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func groupToDTO(g *model.Group) groupDTO {
	userIDs := make([]string, len(g.UserIDs))
	for i, id := range g.UserIDs {
		userIDs[i] = id.String()
	}
	endpointIDs := make([]string, len(g.EndpointIDs))
	for i, id := range g.EndpointIDs {
		endpointIDs[i] = id.String()
	}
	return groupDTO{
		ID:          g.ID.String(),
		Name:        g.Name,
		UserIDs:     userIDs,
		EndpointIDs: endpointIDs,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

type endpointDTO struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Method      string    `json:"method"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func endpointToDTO(e *model.Endpoint) endpointDTO {
	return endpointDTO{
		ID:          e.ID.String(),
		Path:        e.Path,
		Method:      e.Method,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func userToDTO(u *model.User) userDTO {
	return userDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type errorLogDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func errorLogToDTO(e *model.ErrorLog) errorLogDTO {
	return errorLogDTO{
		ID:        e.ID,
		Kind:      e.Kind.String(),
		Message:   e.Message,
		Path:      e.Path,
		UserID:    e.UserID.String(),
		CreatedAt: e.CreatedAt,
	}
}
