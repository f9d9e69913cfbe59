package firestore

import (
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// Behavior maps are stored with plain string keys so the document shape
// stays independent of the domain key types.

func behaviorsToDoc(m model.BehaviorMap) map[string]map[string]string {
	if m == nil {
		return nil
	}
	doc := make(map[string]map[string]string, len(m))
	for stageID, props := range m {
		stage := make(map[string]string, len(props))
		for prop, b := range props {
			stage[string(prop)] = b.String()
		}
		doc[string(stageID)] = stage
	}
	return doc
}

func behaviorsFromDoc(doc map[string]map[string]string) model.BehaviorMap {
	if doc == nil {
		return nil
	}
	m := make(model.BehaviorMap, len(doc))
	for stageID, props := range doc {
		stage := make(map[types.PropertyName]types.Behavior, len(props))
		for prop, b := range props {
			stage[types.PropertyName(prop)] = types.Behavior(b)
		}
		m[types.StageID(stageID)] = stage
	}
	return m
}
