package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/repository/firestore"
	"github.com/gui-far/objectboard/pkg/repository/memory"
)

type Repository struct {
	backend          string
	projectID        string
	collectionPrefix string
}

func (x *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository",
			Usage:       "Repository backend [memory, firestore]",
			Category:    "Repository",
			Value:       "memory",
			Sources:     cli.EnvVars("OBJECTBOARD_REPOSITORY"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required for firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("OBJECTBOARD_FIRESTORE_PROJECT_ID"),
			Destination: &x.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix for Firestore collection names",
			Category:    "Repository",
			Sources:     cli.EnvVars("OBJECTBOARD_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &x.collectionPrefix,
		},
	}
}

func (x Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("project-id", x.projectID),
		slog.String("collection-prefix", x.collectionPrefix),
	)
}

// Backend returns the configured backend name
func (x *Repository) Backend() string {
	return x.backend
}

// Configure builds the repository for the selected backend
func (x *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch x.backend {
	case "memory", "":
		return memory.New(), nil

	case "firestore":
		if x.projectID == "" {
			return nil, goerr.New("--firestore-project-id is required for the firestore backend")
		}

		var opts []firestore.Option
		if x.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(x.collectionPrefix))
		}

		repo, err := firestore.New(ctx, x.projectID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize Firestore repository", goerr.V("project_id", x.projectID))
		}
		return repo, nil

	default:
		return nil, goerr.New("unknown repository backend", goerr.V("backend", x.backend))
	}
}
