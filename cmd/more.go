package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rubiojr/hoi/pkg/results"
	"github.com/urfave/cli/v3"
)

// MoreCommand creates the more command
func MoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "more",
		Usage: "Page through the results of the last find",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "offset",
				Usage: "Index of the first result to show",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of results to show (default: server page size)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			limit := c.Int("limit")
			if limit <= 0 {
				limit = cfg.Server.PageSize
			}

			store, err := results.Open(cfg.ResultsDB, results.WithTTL(cfg.ResultTTL.Duration))
			if err != nil {
				return fmt.Errorf("opening result store: %w", err)
			}
			defer store.Close()

			page, err := store.Page(ctx, cliSession, c.Int("offset"), limit)
			if errors.Is(err, results.ErrNotFound) {
				fmt.Println(noDataStyle.Render("No saved results, run \"hoi find\" first."))
				return nil
			}
			if err != nil {
				return err
			}

			printRecords(page.Results, time.Now())
			next := page.Offset + len(page.Results)
			summary := fmt.Sprintf("%d-%d of %d", page.Offset+1, next, page.Total)
			if len(page.Results) == 0 {
				summary = fmt.Sprintf("0 of %d", page.Total)
			}
			if page.HasMore {
				summary += fmt.Sprintf(" (hoi more --offset %d)", next)
			}
			fmt.Println(countStyle.Render(summary))
			return nil
		},
	}
}
