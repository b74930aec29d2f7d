package main

import (
	"context"
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/pior/dict"
)

var databasesCommand = &cli.Command{
	Name:    "databases",
	Aliases: []string{"dbs"},
	Usage:   "list the databases offered by the server",
	Action: func(c *cli.Context) error {
		return withClient(c, func(ctx context.Context, q dict.Querier) error {
			dbs, err := q.Databases(ctx)
			if err != nil {
				return err
			}

			tbl := table.New("Name", "Description").WithWriter(c.App.Writer)
			for _, db := range dbs {
				tbl.AddRow(db.Name, db.Description)
			}
			tbl.Print()
			return nil
		})
	},
}

var strategiesCommand = &cli.Command{
	Name:    "strategies",
	Aliases: []string{"strats"},
	Usage:   "list the matching strategies offered by the server",
	Action: func(c *cli.Context) error {
		return withClient(c, func(ctx context.Context, q dict.Querier) error {
			strategies, err := q.Strategies(ctx)
			if err != nil {
				return err
			}

			tbl := table.New("Name", "Description").WithWriter(c.App.Writer)
			for _, s := range strategies {
				tbl.AddRow(s.Name, s.Description)
			}
			tbl.Print()
			return nil
		})
	},
}

var matchCommand = &cli.Command{
	Name:      "match",
	Usage:     "list the words matching WORD",
	ArgsUsage: "WORD",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "strategy",
			Usage:   "matching `STRATEGY`, \".\" for the server default",
			Aliases: []string{"S"},
			Value:   dict.DefaultStrategy,
		},
		&cli.StringFlag{
			Name:    "database",
			Usage:   "search `DB`, \"*\" for all, \"!\" for the first with a match",
			Aliases: []string{"d"},
			Value:   dict.AllDatabases,
		},
	},
	Action: func(c *cli.Context) error {
		word, err := wordArg(c)
		if err != nil {
			return err
		}

		return withClient(c, func(ctx context.Context, q dict.Querier) error {
			words, err := q.Match(ctx, word, c.String("strategy"), c.String("database"))
			if err != nil {
				return err
			}

			if len(words) == 0 {
				fmt.Fprintf(c.App.Writer, "No matches for %q\n", word)
				return nil
			}
			for _, w := range words {
				fmt.Fprintln(c.App.Writer, w)
			}
			return nil
		})
	},
}

var defineCommand = &cli.Command{
	Name:      "define",
	Usage:     "print the definitions of WORD",
	ArgsUsage: "WORD",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "database",
			Usage:   "search `DB`, \"*\" for all, \"!\" for the first with a definition",
			Aliases: []string{"d"},
			Value:   dict.AllDatabases,
		},
	},
	Action: func(c *cli.Context) error {
		word, err := wordArg(c)
		if err != nil {
			return err
		}

		return withClient(c, func(ctx context.Context, q dict.Querier) error {
			defs, err := q.Define(ctx, word, c.String("database"))
			if err != nil {
				return err
			}

			if len(defs) == 0 {
				fmt.Fprintf(c.App.Writer, "No definitions for %q\n", word)
				return nil
			}
			for _, def := range defs {
				fmt.Fprintf(c.App.Writer, "From %s:\n\n%s\n\n", source(def.Database), def.Text())
			}
			return nil
		})
	},
}

func source(db dict.Database) string {
	if db.Description == "" {
		return db.Name
	}
	return fmt.Sprintf("%s [%s]", db.Description, db.Name)
}
