package types

import "github.com/m-mizutani/goerr/v2"

// Component represents the input component of a property definition
type Component string

const (
	ComponentText     Component = "TextInput"
	ComponentEmail    Component = "EmailInput"
	ComponentPhone    Component = "PhoneInput"
	ComponentCurrency Component = "CurrencyInput"
)

// AllComponents returns all valid components
func AllComponents() []Component {
	return []Component{
		ComponentText,
		ComponentEmail,
		ComponentPhone,
		ComponentCurrency,
	}
}

// IsValid checks if the component is valid
func (c Component) IsValid() bool {
	switch c {
	case ComponentText, ComponentEmail, ComponentPhone, ComponentCurrency:
		return true
	default:
		return false
	}
}

// String returns the string representation of the component
func (c Component) String() string {
	return string(c)
}

// ParseComponent parses a string into a Component
func ParseComponent(s string) (Component, error) {
	c := Component(s)
	if !c.IsValid() {
		return "", goerr.New("invalid component", goerr.V("component", s))
	}
	return c, nil
}
