package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alphamatrix/ledgrid/internal/storage"
)

// Editors fire several events per save; changes settle for this long before
// a recapture starts.
const settleDelay = 250 * time.Millisecond

// watch runs an initial capture and then recaptures into a new session
// every time the scene file changes. Capture failures are logged and
// watching continues, so a half-saved scene file does not kill the session.
func watch(ctx context.Context, config *Config, store storage.Store, logger *slog.Logger) error {
	if _, err := capture(ctx, config, store, logger); err != nil {
		logger.Error(fmt.Sprintf("initial capture failed: %s", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that save via rename
	// replace the inode and a file watch would go stale.
	if err = watcher.Add(filepath.Dir(config.ScenePath)); err != nil {
		return fmt.Errorf("watching scene directory: %w", err)
	}

	scenePath := filepath.Clean(config.ScenePath)
	logger.Info("watching scene file", slog.String("path", scenePath))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != scenePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("scene file event", slog.String("op", event.Op.String()))
			pending = time.After(settleDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(fmt.Sprintf("watcher error: %s", err))

		case <-pending:
			pending = nil
			logger.Info("scene changed, recapturing")
			if _, err := capture(ctx, config, store, logger); err != nil {
				logger.Error(fmt.Sprintf("recapture failed: %s", err))
			}
		}
	}
}
