package main

import (
	"github.com/spf13/cobra"

	"mercator-hq/nginx-exporter/pkg/cli"
	"mercator-hq/nginx-exporter/pkg/config"
)

// serveOptions holds flag values that override the configuration file.
type serveOptions struct {
	logPath        string
	port           int
	listen         string
	mode           string
	statusGrouping string
	logLevel       string
	logFormat      string
}

// loadConfig reads the configuration file and applies flag overrides.
// The file is optional unless --config was given explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	optional := !flags.Changed("config")

	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile, optional)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}

	applyFlags(cfg, serveFlags, flags.Changed)

	if err := config.Validate(cfg); err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// applyFlags copies every flag that was set on the command line into cfg.
// Flags win over both the file and the environment.
func applyFlags(cfg *config.Config, opts serveOptions, changed func(string) bool) {
	if changed("log-path") {
		cfg.Source.LogPath = opts.logPath
	}
	if changed("port") {
		cfg.Server.ListenAddress = config.ListenAddressForPort(cfg.Server.ListenAddress, opts.port)
	}
	if changed("listen") {
		cfg.Server.ListenAddress = opts.listen
	}
	if changed("mode") {
		prev := cfg.Exporter.Mode
		cfg.Exporter.Mode = opts.mode
		// A grouping that only came from the previous mode's default follows
		// the new mode.
		if !changed("status-grouping") && cfg.Exporter.StatusGrouping == defaultGrouping(prev) {
			cfg.Exporter.StatusGrouping = ""
		}
	}
	if changed("status-grouping") {
		cfg.Exporter.StatusGrouping = opts.statusGrouping
	}
	if changed("log-level") {
		cfg.Telemetry.Logging.Level = opts.logLevel
	}
	if changed("log-format") {
		cfg.Telemetry.Logging.Format = opts.logFormat
	}
	config.ApplyDefaults(cfg)
}

func defaultGrouping(mode string) string {
	if mode == config.ModeSummary {
		return config.GroupingExact
	}
	return config.GroupingClass
}
