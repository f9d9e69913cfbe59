package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// AppConfig loads object definitions to seed at startup from a TOML file
type AppConfig struct {
	path string
}

func (x *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to a TOML file with object definitions to seed",
			Sources:     cli.EnvVars("OBJECTBOARD_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured file path
func (x *AppConfig) Path() string {
	return x.path
}

// SeedFile is the top-level TOML document
type SeedFile struct {
	Definitions []DefinitionSeed `toml:"definition"`
}

// DefinitionSeed describes one object definition in the seed file
type DefinitionSeed struct {
	ObjectType string         `toml:"object_type"`
	Label      string         `toml:"label"`
	IsActive   *bool          `toml:"is_active"`
	Properties []PropertySeed `toml:"property"`
	Stages     []StageSeed    `toml:"stage"`
}

// PropertySeed describes one property of a seeded definition
type PropertySeed struct {
	Name         string `toml:"name"`
	Label        string `toml:"label"`
	Component    string `toml:"component"`
	Required     bool   `toml:"required"`
	SummaryOrder *int   `toml:"summary_order"`
}

// StageSeed describes one Kanban stage of a seeded definition
type StageSeed struct {
	ID             string `toml:"id"`
	Label          string `toml:"label"`
	TotalizerField string `toml:"totalizer_field"`
	AllowRollback  *bool  `toml:"allow_rollback"`
}

// ToDefinition converts the seed into a validated domain definition
func (s *DefinitionSeed) ToDefinition() (*model.ObjectDefinition, error) {
	def := &model.ObjectDefinition{
		ObjectType: types.ObjectType(s.ObjectType),
		Label:      s.Label,
		IsActive:   true,
	}
	if s.IsActive != nil {
		def.IsActive = *s.IsActive
	}

	for _, p := range s.Properties {
		component, err := types.ParseComponent(p.Component)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidSeed, "invalid component",
				goerr.V(ObjectTypeKey, s.ObjectType), goerr.V(PropertyKey, p.Name))
		}
		def.Properties = append(def.Properties, model.PropertyDefinition{
			Name:         types.PropertyName(p.Name),
			Label:        p.Label,
			Component:    component,
			Required:     p.Required,
			SummaryOrder: p.SummaryOrder,
		})
	}

	for _, st := range s.Stages {
		def.Stages = append(def.Stages, model.KanbanStage{
			ID:             types.StageID(st.ID),
			Label:          st.Label,
			TotalizerField: types.PropertyName(st.TotalizerField),
			AllowRollback:  st.AllowRollback,
		})
	}

	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "seed definition validation failed", goerr.V(ObjectTypeKey, s.ObjectType))
	}

	return def, nil
}

// Configure loads and validates the seed file. Returns nil when no file
// is configured.
func (x *AppConfig) Configure() ([]*model.ObjectDefinition, error) {
	if x.path == "" {
		return nil, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "seed file does not exist", goerr.V(ConfigPathKey, x.path))
		}
		return nil, goerr.Wrap(err, "failed to read seed file", goerr.V(ConfigPathKey, x.path))
	}

	var file SeedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML seed file", goerr.V(ConfigPathKey, x.path))
	}

	seen := make(map[string]bool, len(file.Definitions))
	defs := make([]*model.ObjectDefinition, 0, len(file.Definitions))
	for _, seed := range file.Definitions {
		if seen[seed.ObjectType] {
			return nil, goerr.Wrap(ErrInvalidSeed, "duplicate object type in seed file",
				goerr.V(ConfigPathKey, x.path), goerr.V(ObjectTypeKey, seed.ObjectType))
		}
		seen[seed.ObjectType] = true

		def, err := seed.ToDefinition()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid seed file", goerr.V(ConfigPathKey, x.path))
		}
		defs = append(defs, def)
	}

	return defs, nil
}
