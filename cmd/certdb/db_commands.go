package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	appMigrations "github.com/certsys/certdb/internal/app/migrations"
	"github.com/certsys/certdb/internal/bootstrap"
)

// initCommand provisions a database from scratch: every pending migration
// followed by the default data. Running it against an initialized database
// is a no-op.
func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "apply all migrations and seed default data",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				if err := bootstrap.RunMigrations(ctx, env.cfg, env.pool, env.lgr); err != nil {
					return err
				}
				if err := bootstrap.RunSeed(ctx, env.cfg, env.pool, env.lgr); err != nil {
					return err
				}
				fmt.Println("Database initialized.")
				return nil
			})
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply pending migrations without seeding",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				return bootstrap.RunMigrations(ctx, env.cfg, env.pool, env.lgr)
			})
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create the default admin account and submission deadline",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				return bootstrap.RunSeed(ctx, env.cfg, env.pool, env.lgr)
			})
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show applied migrations and table row counts",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				migrator := appMigrations.NewMigrator(env.pool)
				versions, err := migrator.AppliedVersions(ctx)
				if err != nil {
					return err
				}

				fmt.Printf("Applied migrations: %d\n", len(versions))
				for _, v := range versions {
					fmt.Printf("  %s\n", v)
				}

				users, err := env.deps.Repos.UserRepository.Count(ctx)
				if err != nil {
					return err
				}
				configs, err := env.deps.Repos.ConfigRepository.Count(ctx)
				if err != nil {
					return err
				}
				files, err := env.deps.Repos.FileRepository.Count(ctx)
				if err != nil {
					return err
				}
				certs, err := env.deps.Repos.CertificateRepository.Count(ctx)
				if err != nil {
					return err
				}
				submitted, err := env.deps.Repos.CertificateRepository.CountSubmitted(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "\nTABLE\tROWS")
				fmt.Fprintf(w, "users\t%d\n", users)
				fmt.Fprintf(w, "system_config\t%d\n", configs)
				fmt.Fprintf(w, "files\t%d\n", files)
				fmt.Fprintf(w, "certificate_info\t%d (%d submitted)\n", certs, submitted)
				return w.Flush()
			})
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "check that the database holds the expected bootstrap data",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				results, allOK, err := env.deps.VerifyService.Run(ctx)
				if err != nil {
					return err
				}

				for _, r := range results {
					mark := "FAIL"
					if r.OK {
						mark = "ok"
					}
					fmt.Printf("[%s] %s: %s\n", mark, r.Name, r.Detail)
				}
				if !allOK {
					return cli.Exit("verification failed", 1)
				}
				return nil
			})
		},
	}
}
