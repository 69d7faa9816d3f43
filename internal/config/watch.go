package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce absorbs the burst of events editors produce for one save
const defaultDebounce = 250 * time.Millisecond

// Watcher reloads the project config whenever one of its files changes
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(*Config)
}

// NewWatcher creates a watcher for the config files in projectPath. onChange
// is called from the watcher goroutine with every successfully loaded config.
func NewWatcher(projectPath string, logger *slog.Logger, onChange func(*Config)) *Watcher {
	return &Watcher{
		dir:      projectPath,
		debounce: defaultDebounce,
		logger:   logger,
		onChange: onChange,
	}
}

func isConfigFile(name string) bool {
	base := filepath.Base(name)
	return slices.Contains([]string{JSONFileName, YAMLFileName, ".toastq.yml"}, base)
}

// Run watches until ctx is done. Invalid configs are logged and skipped so a
// half-written file never replaces a good config.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Debug("config watcher started", "dir", w.dir)

	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isConfigFile(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			cfg, err := LoadConfig(w.dir)
			if err != nil {
				w.logger.Warn("config reload failed", "dir", w.dir, "error", err)
				continue
			}
			w.logger.Info("config reloaded", "dir", w.dir, "duration_ms", cfg.Toast.DurationMs)
			w.onChange(cfg)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watch error", "dir", w.dir, "error", err)
		}
	}
}
