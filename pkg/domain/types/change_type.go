package types

// ChangeType represents the kind of mutation recorded in an object's history
type ChangeType string

const (
	ChangeTypeCreated        ChangeType = "created"
	ChangeTypePropertyUpdate ChangeType = "property_update"
	ChangeTypeStageChanged   ChangeType = "stage_changed"
	ChangeTypeDeleted        ChangeType = "deleted"
)

// IsValid checks if the change type is valid
func (c ChangeType) IsValid() bool {
	switch c {
	case ChangeTypeCreated, ChangeTypePropertyUpdate, ChangeTypeStageChanged, ChangeTypeDeleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the change type
func (c ChangeType) String() string {
	return string(c)
}
