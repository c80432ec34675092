package cmd

import (
	"fmt"
	"time"

	"github.com/rubiojr/hoi/pkg/config"
	"github.com/rubiojr/hoi/pkg/query"
	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// clockFor returns the clock time phrases are resolved against: the fixed
// RFC 3339 instant in fixed when set, otherwise the wall clock in the
// configured zone.
func clockFor(cfg *config.Config, fixed string) (func() time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if fixed != "" {
		t, err := time.Parse(time.RFC3339, fixed)
		if err != nil {
			return nil, fmt.Errorf("parsing --now: %w", err)
		}
		t = t.In(loc)
		return func() time.Time { return t }, nil
	}
	return func() time.Time { return time.Now().In(loc) }, nil
}

// newEngine loads the configured snapshot into a holder and builds a query
// engine over it.
func newEngine(cfg *config.Config, clock func() time.Time) (*snapshot.Holder, *query.Engine) {
	holder := snapshot.NewHolder(snapshot.LoadOrEmpty(cfg.SnapshotPath))
	return holder, query.New(holder, query.WithClock(clock))
}
