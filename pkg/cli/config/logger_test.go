package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/cli/config"
	"github.com/gui-far/objectboard/pkg/utils/logging"
)

func TestLoggerConfigure(t *testing.T) {
	t.Cleanup(func() {
		logging.SetDefault(logging.New(os.Stdout, slog.LevelInfo, logging.FormatConsole))
	})

	t.Run("defaults", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "console", "-")

		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("json format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("debug", "json", "stderr")

		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "-")

		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "-")

		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		cfg := config.NewLoggerForTest("info", "json", path)

		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()

		_, err = os.Stat(path)
		gt.NoError(t, err)
	})
}
