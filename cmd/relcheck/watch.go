package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch runs a pass, then another one whenever the model file is written,
// until ctx is done. The directory is watched instead of the file, since
// editors often replace files on save.
func watch(ctx context.Context, cfg Config, logger *slog.Logger, stdout io.Writer) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	model, err := filepath.Abs(cfg.Model)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(model)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(model), err)
	}
	logger.Info("watching model", "path", model)
	check(ctx, cfg, logger, stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !modelChanged(ev, model) {
				continue
			}
			logger.Debug("model changed", "op", ev.Op.String())
			check(ctx, cfg, logger, stdout)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// modelChanged reports whether ev rewrites the model file.
func modelChanged(ev fsnotify.Event, model string) bool {
	if filepath.Clean(ev.Name) != model {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
