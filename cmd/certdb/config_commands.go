package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "read and write system configuration entries",
		Subcommands: []*cli.Command{
			configGetCommand(),
			configSetCommand(),
			configListCommand(),
		},
	}
}

func configGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "print a configuration value",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one key", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				entry, err := env.deps.ConfigService.Get(ctx, c.Args().First())
				if err != nil {
					return err
				}
				fmt.Println(entry.ConfigValue)
				return nil
			})
		},
	}
}

func configSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "create or update a configuration entry",
		ArgsUsage: "<key> <value>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "updated-by", Usage: "account ID of the operator making the change"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("expected a key and a value", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				key, value := c.Args().Get(0), c.Args().Get(1)

				var updatedBy *int64
				if accountID := c.String("updated-by"); accountID != "" {
					user, err := env.deps.UserService.GetByAccountID(ctx, accountID)
					if err != nil {
						return err
					}
					updatedBy = &user.UserID
				}

				if err := env.deps.ConfigService.Set(ctx, key, value, updatedBy); err != nil {
					return err
				}
				fmt.Printf("%s = %s\n", key, value)
				return nil
			})
		},
	}
}

func configListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list all configuration entries",
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				entries, err := env.deps.ConfigService.List(ctx)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tVALUE\tDESCRIPTION\tUPDATED AT")
				for _, e := range entries {
					description := ""
					if e.Description != nil {
						description = *e.Description
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						e.ConfigKey, e.ConfigValue, description, e.UpdatedAt.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}
}
