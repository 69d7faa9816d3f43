package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/oklog/ulid/v2"
	"github.com/riordanpawley/toastq/internal/config"
	"github.com/riordanpawley/toastq/internal/logging"
	"github.com/riordanpawley/toastq/internal/services/toasts"
)

// Dependencies holds the services shared by the commands
type Dependencies struct {
	Dir    string
	Config *config.Config
	Logger *slog.Logger
	Queue  *toasts.Queue

	logCloser io.Closer
}

// NewDependencies loads the config for dir and builds the logger and queue.
// Extra options are applied to the queue after the config defaults.
func NewDependencies(dir string, opts ...toasts.Option) (*Dependencies, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := cfg.Log
	if logCfg.File != "" && !filepath.IsAbs(logCfg.File) {
		logCfg.File = filepath.Join(dir, logCfg.File)
	}
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	logger = logger.With("session", ulid.Make().String())

	queueOpts := append([]toasts.Option{
		toasts.WithDefaultDuration(cfg.Toast.Duration()),
		toasts.WithLogger(logger),
	}, opts...)

	return &Dependencies{
		Dir:       dir,
		Config:    cfg,
		Logger:    logger,
		Queue:     toasts.New(queueOpts...),
		logCloser: closer,
	}, nil
}

// Close releases the log file
func (d *Dependencies) Close() error {
	return d.logCloser.Close()
}
