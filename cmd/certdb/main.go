package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/certsys/certdb/internal/pkg/logger"
)

var version = "dev"

func main() {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "certdb",
		Usage:   "provision and maintain the certificate submission database",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				Value:   "configs/config.yaml",
				EnvVars: []string{"CERTDB_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			initCommand(),
			migrateCommand(),
			seedCommand(),
			statusCommand(),
			verifyCommand(),
			userCommand(),
			configCommand(),
			filesCommand(),
			exportCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
