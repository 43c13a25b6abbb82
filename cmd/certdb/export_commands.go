package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/certsys/certdb/internal/app/repositories"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "export data to xlsx workbooks",
		Subcommands: []*cli.Command{
			exportCertsCommand(),
		},
	}
}

func exportCertsCommand() *cli.Command {
	return &cli.Command{
		Name:  "certs",
		Usage: "export certificate records with their submitters",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output workbook path", Value: "certificates.xlsx"},
			&cli.StringFlag{Name: "category", Usage: "filter by award category"},
			&cli.StringFlag{Name: "level", Usage: "filter by award level"},
			&cli.StringFlag{Name: "role", Usage: "filter by submitter role (student, teacher, admin)"},
		},
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				filter := repositories.CertificateFilter{
					AwardCategory: c.String("category"),
					AwardLevel:    c.String("level"),
					SubmitterRole: c.String("role"),
				}

				count, err := env.deps.ExportService.ExportCertificates(ctx, filter, c.String("out"))
				if err != nil {
					return err
				}
				fmt.Printf("%d certificates exported to %s\n", count, c.String("out"))
				return nil
			})
		},
	}
}
