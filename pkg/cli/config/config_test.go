package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/cli/config"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

const validSeed = `
[[definition]]
object_type = "deal"
label = "Deal"

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "TextInput"
  required = true

  [[definition.property]]
  name = "amount"
  label = "Amount"
  component = "CurrencyInput"

  [[definition.stage]]
  id = "new"
  label = "New"

  [[definition.stage]]
  id = "won"
  label = "Won"
  totalizer_field = "amount"
  allow_rollback = false
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadSeedFile(t *testing.T) {
	t.Run("valid seed file", func(t *testing.T) {
		cfg := config.NewAppConfigForTest(writeSeed(t, validSeed))

		defs, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, defs).Length(1)

		def := defs[0]
		gt.Value(t, def.ObjectType).Equal(types.ObjectType("deal"))
		gt.Value(t, def.Label).Equal("Deal")
		gt.Value(t, def.IsActive).Equal(true)
		gt.Array(t, def.Properties).Length(2)
		gt.Value(t, def.Properties[0].Component).Equal(types.ComponentText)
		gt.Bool(t, def.Properties[0].Required).True()
		gt.Array(t, def.Stages).Length(2)
		gt.Value(t, def.Stages[1].TotalizerField).Equal(types.PropertyName("amount"))
		gt.Bool(t, def.Stages[1].RollbackAllowed()).False()
	})

	t.Run("no path configured", func(t *testing.T) {
		cfg := config.NewAppConfigForTest("")

		defs, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Value(t, defs).Nil()
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := config.NewAppConfigForTest(filepath.Join(t.TempDir(), "no-such.toml"))

		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("broken TOML", func(t *testing.T) {
		cfg := config.NewAppConfigForTest(writeSeed(t, "[[definition]\nbroken"))

		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("unknown component", func(t *testing.T) {
		content := `
[[definition]]
object_type = "deal"
label = "Deal"

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "DatePicker"

  [[definition.stage]]
  id = "new"
  label = "New"
`
		cfg := config.NewAppConfigForTest(writeSeed(t, content))

		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidSeed)
	})

	t.Run("definition without stages", func(t *testing.T) {
		content := `
[[definition]]
object_type = "deal"
label = "Deal"

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "TextInput"
`
		cfg := config.NewAppConfigForTest(writeSeed(t, content))

		_, err := cfg.Configure()
		gt.Error(t, err).Is(model.ErrInvalidDefinition)
	})

	t.Run("duplicate object type", func(t *testing.T) {
		cfg := config.NewAppConfigForTest(writeSeed(t, validSeed+validSeed))

		_, err := cfg.Configure()
		gt.Error(t, err).Is(config.ErrInvalidSeed)
	})

	t.Run("totalizer on non-currency property", func(t *testing.T) {
		content := `
[[definition]]
object_type = "deal"
label = "Deal"

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "TextInput"

  [[definition.stage]]
  id = "won"
  label = "Won"
  totalizer_field = "name"
`
		cfg := config.NewAppConfigForTest(writeSeed(t, content))

		_, err := cfg.Configure()
		gt.Error(t, err).Is(model.ErrInvalidDefinition)
	})

	t.Run("is_active false is preserved", func(t *testing.T) {
		content := `
[[definition]]
object_type = "deal"
label = "Deal"
is_active = false

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "TextInput"

  [[definition.stage]]
  id = "new"
  label = "New"
`
		cfg := config.NewAppConfigForTest(writeSeed(t, content))

		defs, err := cfg.Configure()
		gt.NoError(t, err).Required()
		gt.Array(t, defs).Length(1)
		gt.Value(t, defs[0].IsActive).Equal(false)
	})
}
