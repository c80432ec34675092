package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/rubiojr/hoi/pkg/filetype"
	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show snapshot statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			snap, err := snapshot.Load(cfg.SnapshotPath)
			if err != nil {
				return fmt.Errorf("loading snapshot: %w", err)
			}
			showStats(snap)
			return nil
		},
	}
}

type categoryCount struct {
	name  string
	count int
}

func countCategories(snap *snapshot.Snapshot) []categoryCount {
	counts := map[string]int{}
	for _, f := range snap.Files() {
		cat, ok := filetype.Category(filetype.Extension(f.Name))
		if !ok {
			cat = "khac"
		}
		counts[cat]++
	}

	out := make([]categoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, categoryCount{name, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func showStats(snap *snapshot.Snapshot) {
	st := snap.Stats()
	fmt.Println(titleStyle.Render("Snapshot Statistics"))
	fmt.Printf("Generated:   %s\n", st.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Files:       %s\n", formatNumber(st.Files))
	fmt.Printf("Folders:     %s\n", formatNumber(st.Folders))
	fmt.Printf("Orphans:     %s\n", formatNumber(st.Orphans))
	fmt.Printf("Undated:     %s\n", formatNumber(st.Undated))

	if st.Files == 0 {
		return
	}
	title := cases.Title(language.Vietnamese)
	fmt.Println()
	for _, c := range countCategories(snap) {
		fmt.Printf("  %-20s %s\n", nameStyle.Render(title.String(c.name)), countStyle.Render(formatNumber(c.count)))
	}
}
