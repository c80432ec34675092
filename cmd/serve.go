package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rubiojr/hoi/pkg/api"
	"github.com/rubiojr/hoi/pkg/config"
	"github.com/rubiojr/hoi/pkg/log"
	"github.com/rubiojr/hoi/pkg/results"
	"github.com/rubiojr/hoi/pkg/snapshot"
	"github.com/urfave/cli/v3"
)

var serveLog = log.ForService("serve")

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the search HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Address to listen on (default: [server] listen)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if l := c.String("listen"); l != "" {
				cfg.Server.Listen = l
			}
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	clock, err := clockFor(cfg, "")
	if err != nil {
		return err
	}
	holder, engine := newEngine(cfg, clock)
	serveLog.Infof("loaded %d records from %s", holder.Snapshot().Len(), cfg.SnapshotPath)

	store, err := results.Open(cfg.ResultsDB, results.WithTTL(cfg.ResultTTL.Duration))
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			serveLog.Warnf("closing result store: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := snapshot.Watch(ctx, cfg.SnapshotPath, holder); err != nil {
			serveLog.Warnf("snapshot watcher stopped: %v", err)
		}
	}()
	go reloadOnHangup(ctx, cfg.SnapshotPath, holder)
	go purgeResults(ctx, store, cfg.ResultTTL.Duration)

	mux := http.NewServeMux()
	server := api.NewServer(holder, engine,
		api.WithResultStore(store),
		api.WithPageSize(cfg.Server.PageSize))
	server.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           api.CorsMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		serveLog.Infof("listening on http://%s", cfg.Server.Listen)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("\nShutting down...")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	return httpServer.Shutdown(shutdownCtx)
}

// reloadOnHangup swaps in a fresh snapshot on every SIGHUP.
func reloadOnHangup(ctx context.Context, path string, holder *snapshot.Holder) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
			snap, err := snapshot.Load(path)
			if err != nil {
				serveLog.Errorf("reloading snapshot: %v", err)
				continue
			}
			holder.Swap(snap)
			serveLog.Infof("received SIGHUP, reloaded %d records", snap.Len())
		}
	}
}

// purgeResults drops expired result sets every sixth of ttl.
func purgeResults(ctx context.Context, store *results.Store, ttl time.Duration) {
	ticker := time.NewTicker(max(ttl/6, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := store.PurgeOlderThan(ctx, time.Now().Add(-ttl)); err != nil {
				serveLog.Warnf("purging results: %v", err)
			}
		}
	}
}
