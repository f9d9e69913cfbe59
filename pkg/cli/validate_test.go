package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/cli"
)

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "seed.toml")
	content := `
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
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	// Run validate command with only the seed file (no DB check)
	err = cli.Run(context.Background(), []string{"objectboard", "validate", "--config", configPath}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "seed.toml")
	content := `
[[definition]]
object_type = "deal"
label = "Deal"

  [[definition.property]]
  name = "name"
  label = "Name"
  component = "Dropdown"

  [[definition.stage]]
  id = "new"
  label = "New"
`
	err := os.WriteFile(configPath, []byte(content), 0o600)
	gt.NoError(t, err).Required()

	err = cli.Run(context.Background(), []string{"objectboard", "validate", "--config", configPath}, "test")
	gt.Error(t, err)
}

func TestRun_ValidateCommand_MissingConfig(t *testing.T) {
	err := cli.Run(context.Background(), []string{"objectboard", "validate"}, "test")
	gt.Error(t, err)
}
