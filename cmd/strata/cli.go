package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"strata/internal/errors"
	"strata/internal/etl"
	"strata/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, pipe *etl.Pipeline) *cli.App {
	app := &cli.App{
		Name:    "strata",
		Usage:   "DeFi strategy prompt processor",
		Version: Version,
		Commands: []*cli.Command{
			processCmd(db, pipe),
			fetchCmd(db),
			listCmd(db),
			searchCmd(db),
			deleteCmd(db),
			purgeCmd(db),
			exportCmd(db),
			statsCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// processCmd creates the process command.
func processCmd(db *sql.DB, pipe *etl.Pipeline) *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Process a strategy prompt (positional text or piped via stdin)",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "submitter", Aliases: []string{"u"}, Usage: "Who submitted the prompt"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Where the prompt came from"},
			&cli.StringSliceFlag{Name: "extra", Aliases: []string{"x"}, Usage: "Extra metadata as key=value (repeatable)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Process without storing the result"},
		},
		Action: func(c *cli.Context) error {
			var text string
			if c.NArg() > 0 {
				text = strings.Join(c.Args().Slice(), " ")
			} else if stdinHasData() {
				data, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				text = data
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("text is required (pass as argument or pipe via stdin)"))
			}

			extra, err := parseExtra(c.StringSlice("extra"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			input := ops.ProcessInput{
				Text:   text,
				Extra:  extra,
				DryRun: c.Bool("dry-run"),
			}
			if submitter := c.String("submitter"); submitter != "" {
				input.Submitter = &submitter
			}
			if source := c.String("source"); source != "" {
				input.Source = &source
			}

			output, err := ops.Process(c.Context, db, pipe, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a record by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted records"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(c.Context, db, ops.FetchInput{
				ID:             c.Args().First(),
				IncludeDeleted: c.Bool("include-deleted"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List records, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Filter by strategy type"},
			&cli.StringFlag{Name: "asset", Aliases: []string{"a"}, Usage: "Filter by primary asset"},
			&cli.StringFlag{Name: "submitter", Aliases: []string{"u"}, Usage: "Filter by submitter"},
			&cli.BoolFlag{Name: "compatible", Usage: "Only records that passed compatibility validation"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Page size"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(c.Context, db, ops.ListInput{
				StrategyType:   c.String("type"),
				PrimaryAsset:   c.String("asset"),
				Submitter:      c.String("submitter"),
				CompatibleOnly: c.Bool("compatible"),
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search records by raw prompt text",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Search(c.Context, db, ops.SearchInput{
				Query: strings.Join(c.Args().Slice(), " "),
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a record",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently remove soft-deleted records",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "older-than", Usage: "Only purge records deleted at least this many days ago"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Purge(c.Context, db, ops.PurgeInput{
				OlderThanDays: c.Int("older-than"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export all active records as JSON Lines",
		ArgsUsage: "[path]",
		Action: func(c *cli.Context) error {
			w := io.Writer(os.Stdout)
			if path := c.Args().First(); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				defer f.Close()
				w = f
			}

			output, err := ops.Export(c.Context, db, w)
			if err != nil {
				return outputError(err)
			}

			// Counts go to stderr so stdout stays clean JSONL
			fmt.Fprintf(os.Stderr, "exported %d records\n", output.Exported)
			return nil
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize stored records",
		Action: func(c *cli.Context) error {
			output, err := ops.GetStats(c.Context, db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if opErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", opErr.Code, opErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseExtra turns repeated key=value flags into a metadata map.
func parseExtra(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid extra %q, expected key=value", p)
		}
		extra[key] = strings.TrimSpace(value)
	}
	return extra, nil
}
