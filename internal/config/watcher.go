package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchEnvFile watches the given .env path and emits a debounced signal on
// the returned channel whenever it changes, so the companion can reload its
// Config without a restart. Grounded on the teacher's pkg/config/watcher.go,
// narrowed from watching two JSON files to watching the single .env file
// this companion's Config is sourced from.
func WatchEnvFile(ctx context.Context, path string) <-chan struct{} {
	reloadCh := make(chan struct{}, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("failed to create config watcher", "error", err)
		return reloadCh
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		slog.Warn("could not resolve config path", "path", path, "error", err)
		return reloadCh
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		slog.Warn("could not watch config directory", "path", absPath, "error", err)
		return reloadCh
	}

	go func() {
		defer watcher.Close()
		defer close(reloadCh)

		var timer *time.Timer
		const debounce = 500 * time.Millisecond

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filepath.Base(absPath) {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					slog.Info("configuration file changed", "file", event.Name)
					select {
					case reloadCh <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("config watcher error", "error", err)
			}
		}
	}()

	return reloadCh
}
