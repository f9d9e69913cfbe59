package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/cli/config"
	"github.com/gui-far/objectboard/pkg/repository/errs"
	"github.com/gui-far/objectboard/pkg/repository/firestore"
	"github.com/gui-far/objectboard/pkg/utils/safe"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var firestoreProjectID string

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "firestore-project-id",
		Usage:       "Firestore Project ID (if specified, seeds are checked against the live database)",
		Sources:     cli.EnvVars("OBJECTBOARD_FIRESTORE_PROJECT_ID"),
		Destination: &firestoreProjectID,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the seed definition file and optionally check it against Firestore",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if appCfg.Path() == "" {
				return goerr.New("--config is required")
			}

			pass := color.New(color.FgGreen, color.Bold).SprintFunc()
			warn := color.New(color.FgYellow).SprintFunc()
			fail := color.New(color.FgRed, color.Bold).SprintFunc()

			seeds, err := appCfg.Configure()
			if err != nil {
				fmt.Printf("%s %s\n", fail("FAIL"), appCfg.Path())
				return goerr.Wrap(err, "seed file validation failed")
			}

			fmt.Printf("%s %s\n", pass("PASS"), appCfg.Path())
			for _, def := range seeds {
				fmt.Printf("  %s: %d properties, %d stages\n",
					def.ObjectType, len(def.Properties), len(def.Stages))
			}

			if firestoreProjectID == "" {
				return nil
			}

			// Check which seeded types already exist in the live database
			repo, err := firestore.New(ctx, firestoreProjectID)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Firestore repository")
			}
			defer safe.Close(ctx, repo)

			for _, def := range seeds {
				existing, err := repo.Definition().GetByType(ctx, def.ObjectType)
				if err != nil {
					if errors.Is(err, errs.ErrNotFound) {
						fmt.Printf("  %s %s: not in database, serve would create it\n", warn("NEW "), def.ObjectType)
						continue
					}
					return goerr.Wrap(err, "failed to query definition", goerr.V("object_type", def.ObjectType))
				}
				fmt.Printf("  %s %s: already exists (id=%s)\n", pass("OK  "), def.ObjectType, existing.ID)
			}

			return nil
		},
	}
}
