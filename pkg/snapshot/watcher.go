package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives writers a moment to finish before the file is re-read.
var settleDelay = 150 * time.Millisecond

// Watch reloads path into h whenever the file changes, until ctx is done.
// The parent directory is watched so atomic rename-over writes are seen.
// A reload that fails keeps the current snapshot.
func Watch(ctx context.Context, path string, h *Holder) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating snapshot watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Infof("watching snapshot %s for changes", path)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(settleDelay):
			}
			if err := reload(path, h); err != nil {
				logger.Warnf("reloading snapshot after %s: %v", event.Op, err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("snapshot watcher: %v", err)
		}
	}
}

func reload(path string, h *Holder) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	h.Swap(s)
	logger.Infof("snapshot reloaded: %d records", s.Len())
	return nil
}
