package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/certsys/certdb/internal/bootstrap"
	"github.com/certsys/certdb/internal/config"
)

// cliEnv bundles the loaded configuration and wired dependencies for one
// command invocation. The pool is closed by withEnv after the command runs.
type cliEnv struct {
	cfg  *config.Config
	lgr  zerolog.Logger
	pool *pgxpool.Pool
	deps *bootstrap.Dependencies
}

// withConfig loads configuration and the logger, without a database
// connection. Used by commands that work purely on local files.
func withConfig(c *cli.Context, fn func(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}
	return fn(c.Context, cfg, lgr)
}

// withEnv loads configuration, connects the database and builds services,
// then runs fn.
func withEnv(c *cli.Context, fn func(ctx context.Context, env *cliEnv) error) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(c.String("config"))
	if err != nil {
		return err
	}

	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, pool, lgr)
	if err != nil {
		return err
	}

	return fn(c.Context, &cliEnv{cfg: cfg, lgr: lgr, pool: pool, deps: deps})
}
