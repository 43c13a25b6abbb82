package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/certsys/certdb/internal/app/models"
	"github.com/certsys/certdb/internal/app/services"
	"github.com/certsys/certdb/internal/config"
	"github.com/certsys/certdb/internal/pkg/auth"
)

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "manage user accounts",
		Subcommands: []*cli.Command{
			userCreateCommand(),
			userListCommand(),
			userActivateCommand(true),
			userActivateCommand(false),
			userImportCommand(),
			userTemplateCommand(),
			userResetPasswordCommand(),
		},
	}
}

func userCreateCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "create a single user account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account-id", Usage: "13-digit student or 8-digit staff number", Required: true},
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "role", Usage: "student, teacher or admin", Required: true},
			&cli.StringFlag{Name: "department", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "initial password; generated when omitted"},
		},
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				password := c.String("password")
				generated := false
				if password == "" {
					var err error
					password, err = auth.GeneratePassword(12)
					if err != nil {
						return err
					}
					generated = true
				}

				user, err := env.deps.UserService.Create(ctx, services.CreateUserInput{
					AccountID:  c.String("account-id"),
					Name:       c.String("name"),
					Role:       c.String("role"),
					Department: c.String("department"),
					Email:      c.String("email"),
					Password:   password,
					CreatedBy:  models.CreatedByAdminImport,
				})
				if err != nil {
					return err
				}

				fmt.Printf("Created user %s (%s, %s)\n", user.AccountID, user.Name, user.Role)
				if generated {
					fmt.Printf("Initial password: %s\n", password)
				}
				return nil
			})
		},
	}
}

func userListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list user accounts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Usage: "filter by role (student, teacher, admin)"},
		},
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				users, err := env.deps.UserService.List(ctx, c.String("role"))
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ACCOUNT ID\tNAME\tROLE\tDEPARTMENT\tEMAIL\tACTIVE\tCREATED BY")
				for _, u := range users {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
						u.AccountID, u.Name, u.Role, u.Department, u.Email, u.IsActive, u.CreatedBy)
				}
				return w.Flush()
			})
		},
	}
}

func userActivateCommand(activate bool) *cli.Command {
	name, usage := "activate", "re-enable a user account"
	if !activate {
		name, usage = "deactivate", "disable a user account without deleting its data"
	}
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<account-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one account ID", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				accountID := c.Args().First()
				if err := env.deps.UserService.SetActive(ctx, accountID, activate); err != nil {
					return err
				}
				fmt.Printf("User %s %sd\n", accountID, name)
				return nil
			})
		},
	}
}

func userImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "batch-create users from an xlsx workbook",
		ArgsUsage: "<workbook.xlsx>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "validate the workbook without writing to the database"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one workbook path", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				f, err := os.Open(c.Args().First())
				if err != nil {
					return err
				}
				defer f.Close()

				rows, err := env.deps.ImportService.ParseWorkbook(f)
				if err != nil {
					return err
				}

				if c.Bool("dry-run") {
					bad := 0
					for _, row := range rows {
						if len(row.Errors) > 0 {
							bad++
							for _, msg := range row.Errors {
								fmt.Printf("row %d (%s): %s\n", row.Line, row.Input.AccountID, msg)
							}
						}
					}
					fmt.Printf("%d rows parsed, %d with errors; nothing written\n", len(rows), bad)
					return nil
				}

				report, err := env.deps.ImportService.Import(ctx, rows)
				if err != nil {
					return err
				}
				printImportReport(report)
				return nil
			})
		},
	}
}

func printImportReport(report *services.ImportReport) {
	fmt.Printf("Import batch %s: %d total, %d created, %d duplicate, %d failed\n",
		report.BatchID, report.Total, report.Created, report.Duplicate, report.Failed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tACCOUNT ID\tNAME\tSTATUS\tPASSWORD\tREASON")
	for _, d := range report.Details {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", d.Line, d.AccountID, d.Name, d.Status, d.Password, d.Reason)
	}
	w.Flush()
}

func userTemplateCommand() *cli.Command {
	return &cli.Command{
		Name:      "template",
		Usage:     "write an empty import workbook with the expected headers",
		ArgsUsage: "<output.xlsx>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one output path", 2)
			}
			// Writing the template needs no database connection.
			return withConfig(c, func(_ context.Context, _ *config.Config, lgr zerolog.Logger) error {
				path := c.Args().First()
				svc := services.NewImportService(nil, nil, lgr)
				if err := svc.WriteTemplate(path); err != nil {
					return err
				}
				fmt.Printf("Template written to %s\n", path)
				return nil
			})
		},
	}
}

func userResetPasswordCommand() *cli.Command {
	return &cli.Command{
		Name:      "reset-password",
		Usage:     "set a new password for an account",
		ArgsUsage: "<account-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Usage: "new password; generated when omitted"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one account ID", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				accountID := c.Args().First()
				password := c.String("password")
				generated := false
				if password == "" {
					var err error
					password, err = auth.GeneratePassword(12)
					if err != nil {
						return err
					}
					generated = true
				}

				if err := env.deps.UserService.ResetPassword(ctx, accountID, password); err != nil {
					return err
				}
				fmt.Printf("Password reset for %s\n", accountID)
				if generated {
					fmt.Printf("New password: %s\n", password)
				}
				return nil
			})
		},
	}
}
