package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidSeed    = goerr.New("invalid seed definition")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	ObjectTypeKey = "object_type"
	PropertyKey   = "property"
	StageKey      = "stage"
)
