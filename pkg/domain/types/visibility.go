package types

import "github.com/m-mizutani/goerr/v2"

// Visibility represents the access classification of a generic object,
// distinct from per-property behaviors
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
	VisibilityShared  Visibility = "shared"
)

// AllVisibilities returns all valid visibilities
func AllVisibilities() []Visibility {
	return []Visibility{
		VisibilityPrivate,
		VisibilityPublic,
		VisibilityShared,
	}
}

// IsValid checks if the visibility is valid
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityPublic, VisibilityShared:
		return true
	default:
		return false
	}
}

// String returns the string representation of the visibility
func (v Visibility) String() string {
	return string(v)
}

// ParseVisibility parses a string into a Visibility
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(s)
	if !v.IsValid() {
		return "", goerr.New("invalid visibility", goerr.V("visibility", s))
	}
	return v, nil
}
