package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

// IndexCommand creates the index command
func IndexCommand() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Crawl a directory into the snapshot file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "Directory to crawl (default: [index] root)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Extra glob pattern to skip. Can be used multiple times",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Snapshot file to write (default: snapshot_path)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			root := c.String("root")
			if root == "" {
				root = cfg.Index.Root
			}
			if root == "" {
				return fmt.Errorf("no directory to index, set [index] root or pass --root")
			}
			output := c.String("output")
			if output == "" {
				output = cfg.SnapshotPath
			}
			exclude := append(append([]string{}, cfg.Index.Exclude...), c.StringSlice("exclude")...)
			return index(ctx, root, output, exclude)
		},
	}
}

func index(ctx context.Context, root, output string, exclude []string) error {
	start := time.Now()
	snap, err := snapshot.Crawl(ctx, root, snapshot.CrawlOptions{Exclude: exclude})
	if err != nil {
		return fmt.Errorf("crawling %s: %w", root, err)
	}
	if err := snapshot.Save(output, snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	st := snap.Stats()
	fmt.Printf("Indexed %s files and %s folders in %s\n",
		formatNumber(st.Files), formatNumber(st.Folders), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Snapshot written to %s\n", output)
	return nil
}
