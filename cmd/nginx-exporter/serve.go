package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"mercator-hq/nginx-exporter/pkg/cli"
	"mercator-hq/nginx-exporter/pkg/config"
	"mercator-hq/nginx-exporter/pkg/scrape"
	"mercator-hq/nginx-exporter/pkg/server"
	"mercator-hq/nginx-exporter/pkg/telemetry/health"
	"mercator-hq/nginx-exporter/pkg/telemetry/logging"
	"mercator-hq/nginx-exporter/pkg/telemetry/metrics"
	"mercator-hq/nginx-exporter/pkg/telemetry/tracing"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Telemetry.Logging)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("serve", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to flush spans", "error", err)
		}
	}()

	srv, err := buildServer(cfg, logger.Slog())
	if err != nil {
		return err
	}

	logger.Info("starting nginx exporter",
		"version", Version,
		"listen_address", cfg.Server.ListenAddress,
		"metrics_path", cfg.Server.MetricsPath,
		"log_path", cfg.Source.LogPath,
		"mode", cfg.Exporter.Mode,
		"status_grouping", cfg.Exporter.StatusGrouping,
		"tracing", tracer.Enabled(),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})

	if cfg.Watch {
		watcher, err := watchConfig(cmd, logger)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		if watcher != nil {
			g.Go(func() error {
				return watcher.Watch(gctx, func(next *config.Config) {
					applyReload(logger, next, cmd.Flags().Changed("log-level"))
				})
			})
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewCommandError("serve", err)
	}

	logger.Info("nginx exporter stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	return logging.New(logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: cfg.AddSource,
		Writer:    os.Stderr,
	})
}

// buildServer wires the scrape pipeline behind the HTTP server.
func buildServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	collector := metrics.NewCollector(metrics.Config{
		Enabled: cfg.Exporter.SelfMetricsEnabled(),
	}, nil)

	coord, err := scrape.FromConfig(cfg, collector, logger)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	checker := health.New(0)
	checker.RegisterCheck("log_files", logFilesCheck(cfg.Source.LogPath))

	return server.NewServer(&cfg.Server, coord, checker), nil
}

// logFilesCheck fails while the log path pattern matches no files.
func logFilesCheck(pattern string) health.CheckFunc {
	return func(ctx context.Context) error {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files match %s", pattern)
		}
		return nil
	}
}

// watchConfig returns nil when there is no configuration file to watch.
func watchConfig(cmd *cobra.Command, logger *logging.Logger) (*config.Watcher, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if !cmd.Flags().Changed("config") && errors.Is(err, os.ErrNotExist) {
			logger.Warn("config watch enabled but no config file present", "path", cfgFile)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return config.NewWatcher(cfgFile, config.DefaultDebounceInterval, logger.Slog())
}

// applyReload applies the settings that can change without a restart.
// Only the log level is live; other changes are logged and need a restart.
func applyReload(logger *logging.Logger, next *config.Config, levelPinned bool) {
	if levelPinned {
		logger.Info("config reloaded, log level pinned by flag")
		return
	}
	if err := logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
		logger.Warn("ignoring invalid log level from reloaded config",
			"level", next.Telemetry.Logging.Level,
			"error", err,
		)
		return
	}
	logger.Info("config reloaded", "log_level", next.Telemetry.Logging.Level)
}
