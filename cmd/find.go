package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rubiojr/hoi/pkg/config"
	"github.com/rubiojr/hoi/pkg/query"
	"github.com/rubiojr/hoi/pkg/results"
	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

// cliSession names the result set saved by find and read by more.
const cliSession = "cli"

// FindCommand creates the find command
func FindCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Search the snapshot",
		ArgsUsage: "<keyword|time|description|parent|type> <query...>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results to print (0 for all)",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "now",
				Usage: "Resolve time phrases against this RFC 3339 instant",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-save",
				Usage: "Do not save the results for \"hoi more\"",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			args := c.Args().Slice()
			if len(args) < 2 {
				return fmt.Errorf("usage: hoi find %s", c.ArgsUsage)
			}
			kind, err := query.ParseKind(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return find(ctx, cfg, findOptions{
				kind:   kind,
				query:  strings.Join(args[1:], " "),
				limit:  c.Int("limit"),
				now:    c.String("now"),
				json:   c.Bool("json"),
				noSave: c.Bool("no-save"),
			})
		},
	}
}

type findOptions struct {
	kind   query.Kind
	query  string
	limit  int
	now    string
	json   bool
	noSave bool
}

func find(ctx context.Context, cfg *config.Config, opts findOptions) error {
	clock, err := clockFor(cfg, opts.now)
	if err != nil {
		return err
	}
	_, engine := newEngine(cfg, clock)
	found := engine.Find(opts.kind, opts.query)

	if !opts.noSave && len(found) > 0 {
		if err := saveResults(ctx, cfg, found); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	shown := found
	if opts.limit > 0 && len(shown) > opts.limit {
		shown = shown[:opts.limit]
	}

	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"count": len(found), "results": shown})
	}

	title := fmt.Sprintf("%s: %s", opts.kind, opts.query)
	fmt.Println(titleStyle.Render(title))
	printRecords(shown, clock())
	if len(found) == 0 {
		return nil
	}
	summary := fmt.Sprintf("%s results", formatNumber(len(found)))
	if len(shown) < len(found) {
		summary += fmt.Sprintf(", showing %d (hoi more --offset %d)", len(shown), len(shown))
	}
	fmt.Println(countStyle.Render(summary))
	return nil
}

func saveResults(ctx context.Context, cfg *config.Config, found []snapshot.FileRecord) error {
	store, err := results.Open(cfg.ResultsDB, results.WithTTL(cfg.ResultTTL.Duration))
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	defer store.Close()
	return store.Save(ctx, cliSession, found)
}

func printRecords(records []snapshot.FileRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Println(noDataStyle.Render("No files found."))
		return
	}
	for _, r := range records {
		modified := "no date"
		if r.ModifiedTime != nil {
			modified = formatTime(*r.ModifiedTime, now)
		}
		fmt.Printf("%s  %s\n", nameStyle.Render(r.Name), metaStyle.Render(modified))
		fmt.Printf("  %s\n", metaStyle.Render(r.Path))
	}
}
