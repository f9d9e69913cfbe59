package types

import "github.com/m-mizutani/goerr/v2"

// Behavior represents the editability/visibility class of a property at a
// given stage. Editable implies visible; visible implies present.
type Behavior string

const (
	BehaviorEditable  Behavior = "editable"
	BehaviorVisible   Behavior = "visible"
	BehaviorInvisible Behavior = "invisible"
)

// DefaultBehavior is assumed when a definition records no behavior for a
// (stage, property) pair
const DefaultBehavior = BehaviorEditable

// AllBehaviors returns all valid behaviors
func AllBehaviors() []Behavior {
	return []Behavior{
		BehaviorEditable,
		BehaviorVisible,
		BehaviorInvisible,
	}
}

// IsValid checks if the behavior is valid
func (b Behavior) IsValid() bool {
	switch b {
	case BehaviorEditable, BehaviorVisible, BehaviorInvisible:
		return true
	default:
		return false
	}
}

// String returns the string representation of the behavior
func (b Behavior) String() string {
	return string(b)
}

// ParseBehavior parses a string into a Behavior
func ParseBehavior(s string) (Behavior, error) {
	b := Behavior(s)
	if !b.IsValid() {
		return "", goerr.New("invalid behavior", goerr.V("behavior", s))
	}
	return b, nil
}

// rank orders behaviors by permissiveness: editable > visible > invisible
func (b Behavior) rank() int {
	switch b {
	case BehaviorEditable:
		return 2
	case BehaviorVisible:
		return 1
	default:
		return 0
	}
}

// NoMorePermissiveThan reports whether b grants at most what ceiling grants.
// Group overrides may only narrow a definition's default, never loosen it.
func (b Behavior) NoMorePermissiveThan(ceiling Behavior) bool {
	return b.rank() <= ceiling.rank()
}

// MorePermissiveThan reports whether b grants strictly more than other
func (b Behavior) MorePermissiveThan(other Behavior) bool {
	return b.rank() > other.rank()
}
