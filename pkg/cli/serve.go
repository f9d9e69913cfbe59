package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/cli/config"
	httpctrl "github.com/gui-far/objectboard/pkg/controller/http"
	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/repository/errs"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthEmail string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var authCfg config.Auth
	var notifyCfg config.Notify

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("OBJECTBOARD_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run every request as the given email address with administrator rights (development only). Example: --no-auth=dev@example.com",
			Category:    "Authentication",
			Sources:     cli.EnvVars("OBJECTBOARD_NO_AUTH"),
			Destination: &noAuthEmail,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, authCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Load seed definitions before touching the repository so a
			// broken seed file fails fast
			seeds, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load seed definitions")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Set no-auth email if provided
			if noAuthEmail != "" {
				authCfg.SetNoAuthEmail(noAuthEmail)
			}

			// Configure authentication
			authUC, err := authCfg.Configure(repo)
			if err != nil {
				return goerr.Wrap(err, "failed to configure authentication")
			}

			if authCfg.IsNoAuthMode() {
				logging.Default().Warn("Running in no-auth mode (development only)", "email", noAuthEmail)
			} else {
				logging.Default().Info("Token authentication enabled", "auth", authCfg)
			}

			// Initialize use cases with auth and optional notifications
			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
			}
			if notifyCfg.IsConfigured() {
				ucOpts = append(ucOpts, usecase.WithNotify(notifyCfg.Configure()))
				logging.Default().Info("Slack notifications enabled")
			}

			uc := usecase.New(repo, ucOpts...)

			if err := seedDefinitions(ctx, repo, seeds); err != nil {
				return goerr.Wrap(err, "failed to seed object definitions")
			}

			// Create HTTP server
			handler := httpctrl.New(uc, httpctrl.WithAuth(authUC))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "repository", repoCfg)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// seedDefinitions creates the seeded object definitions, skipping types
// that already exist so the seed file stays idempotent across restarts.
func seedDefinitions(ctx context.Context, repo interfaces.Repository, seeds []*model.ObjectDefinition) error {
	for _, def := range seeds {
		created, err := repo.Definition().Create(ctx, def)
		if err != nil {
			if errors.Is(err, errs.ErrConflict) {
				logging.Default().Info("Seed definition already exists, skipping", "object_type", def.ObjectType)
				continue
			}
			return goerr.Wrap(err, "failed to create seed definition", goerr.V("object_type", def.ObjectType))
		}
		logging.Default().Info("Seeded object definition", "object_type", created.ObjectType, "id", created.ID)
	}
	return nil
}
