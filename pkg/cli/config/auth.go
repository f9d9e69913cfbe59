package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/usecase"
)

type Auth struct {
	secret      string
	tokenTTL    time.Duration
	adminEmails string
	noAuthEmail string
}

func (x *Auth) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jwt-secret",
			Usage:       "Secret key for signing access tokens (required unless --no-auth is set)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("OBJECTBOARD_JWT_SECRET"),
			Destination: &x.secret,
		},
		&cli.DurationFlag{
			Name:        "token-ttl",
			Usage:       "Access token lifetime",
			Category:    "Authentication",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("OBJECTBOARD_TOKEN_TTL"),
			Destination: &x.tokenTTL,
		},
		&cli.StringFlag{
			Name:        "admin-emails",
			Usage:       "Comma-separated email addresses that sign up as administrators",
			Category:    "Authentication",
			Sources:     cli.EnvVars("OBJECTBOARD_ADMIN_EMAILS"),
			Destination: &x.adminEmails,
		},
	}
}

func (x Auth) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("secret.len", len(x.secret)),
		slog.Duration("token-ttl", x.tokenTTL),
		slog.String("admin-emails", x.adminEmails),
		slog.String("no-auth", x.noAuthEmail),
	)
}

// SetNoAuthEmail enables no-auth mode as the given email address
func (x *Auth) SetNoAuthEmail(email string) {
	x.noAuthEmail = email
}

// IsNoAuthMode returns true if no-auth mode is enabled
func (x *Auth) IsNoAuthMode() bool {
	return x.noAuthEmail != ""
}

// AdminEmails returns the configured administrator addresses
func (x *Auth) AdminEmails() []string {
	if x.adminEmails == "" {
		return nil
	}

	var emails []string
	for _, email := range strings.Split(x.adminEmails, ",") {
		email = strings.TrimSpace(email)
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

// Configure builds the authentication use case. In no-auth mode every
// request runs as the configured email with administrator rights.
func (x *Auth) Configure(repo interfaces.Repository) (usecase.AuthUseCaseInterface, error) {
	if x.noAuthEmail != "" {
		if x.secret != "" {
			slog.Warn("--no-auth is set, ignoring --jwt-secret")
		}
		return usecase.NewNoAuthnUseCase(repo, x.noAuthEmail), nil
	}

	if x.secret == "" {
		return nil, goerr.New("authentication configuration is required: set --jwt-secret, or use --no-auth with an email address")
	}

	opts := []usecase.AuthOption{
		usecase.WithAdminEmails(x.AdminEmails()),
	}
	if x.tokenTTL > 0 {
		opts = append(opts, usecase.WithTokenTTL(x.tokenTTL))
	}

	return usecase.NewAuthUseCase(repo, []byte(x.secret), opts...), nil
}
