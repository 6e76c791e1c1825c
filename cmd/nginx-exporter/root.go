package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/nginx-exporter/pkg/cli"
	"mercator-hq/nginx-exporter/pkg/config"
)

var (
	// Global flags
	cfgFile string
)

var serveFlags serveOptions

var rootCmd = &cobra.Command{
	Use:   "nginx-exporter",
	Short: "Prometheus exporter for nginx JSON access logs",
	Long: `nginx-exporter tails nginx access logs written in JSON and exposes request
durations as Prometheus metrics.

Every scrape of the metrics endpoint reads only the bytes appended since the
previous scrape, so the exporter keeps no state beyond the process lifetime.
Rotated or truncated logs are detected and read again from the start.

Examples:
  # Defaults: /var/log/nginx/*.log on 0.0.0.0:9090
  nginx-exporter

  # Custom log pattern and port
  nginx-exporter -l '/srv/logs/*.json' -p 9113

  # Per-scrape quantiles with exact status codes
  nginx-exporter --mode summary`,
	Version:       Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command and exits with a status derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml",
		"config file path (optional unless set explicitly)")

	// Serving flags, also honoured by validate
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&serveFlags.logPath, "log-path", "l", config.DefaultLogPath, "glob pattern of access log files")
	flags.IntVarP(&serveFlags.port, "port", "p", config.DefaultPort, "port to listen on (all interfaces)")
	flags.StringVar(&serveFlags.listen, "listen", "", "full listen address, overrides --port")
	flags.StringVar(&serveFlags.mode, "mode", "", "exposition mode: histogram, summary")
	flags.StringVar(&serveFlags.statusGrouping, "status-grouping", "", "status_code label: class, exact")
	flags.StringVar(&serveFlags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&serveFlags.logFormat, "log-format", "", "log format: json, text, console")
}
