package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func filesCommand() *cli.Command {
	return &cli.Command{
		Name:  "files",
		Usage: "manage uploaded-file records and the storage directory",
		Subcommands: []*cli.Command{
			filesListCommand(),
			filesDeleteCommand(),
			filesPruneCommand(),
		},
	}
}

func filesListCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list a user's file records, newest first",
		ArgsUsage: "<account-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one account ID", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				files, err := env.deps.FileService.ListByAccount(ctx, c.Args().First())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "FILE ID\tNAME\tTYPE\tSIZE\tUPLOADED")
				for _, f := range files {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
						f.FileID, f.FileName, f.FileType, f.FileSize, f.UploadTime.Format("2006-01-02 15:04:05"))
				}
				return w.Flush()
			})
		},
	}
}

func filesDeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "remove a file record and its stored file",
		ArgsUsage: "<file-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one file ID", 2)
			}
			fileID, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return cli.Exit("file ID must be a number", 2)
			}
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				if err := env.deps.FileService.Delete(ctx, fileID); err != nil {
					return err
				}
				fmt.Printf("File %d deleted\n", fileID)
				return nil
			})
		},
	}
}

func filesPruneCommand() *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "remove stored files that have no database record",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "report orphaned files without deleting them"},
		},
		Action: func(c *cli.Context) error {
			return withEnv(c, func(ctx context.Context, env *cliEnv) error {
				orphans, err := env.deps.FileService.Prune(ctx, c.Bool("dry-run"))
				if err != nil {
					return err
				}

				if len(orphans) == 0 {
					fmt.Println("No orphaned files.")
					return nil
				}
				for _, name := range orphans {
					fmt.Println(name)
				}
				if c.Bool("dry-run") {
					fmt.Printf("%d orphaned files (dry run, nothing removed)\n", len(orphans))
				} else {
					fmt.Printf("%d orphaned files removed\n", len(orphans))
				}
				return nil
			})
		},
	}
}
