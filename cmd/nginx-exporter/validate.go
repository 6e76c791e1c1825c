package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/nginx-exporter/pkg/cli"
	"mercator-hq/nginx-exporter/pkg/config"
)

var validateOutput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and show the effective settings",
	Long: `Load the configuration file, apply environment and flag overrides, and
print the settings the exporter would run with, including the log files the
pattern currently matches.

Exit code 2 signals an invalid configuration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseOutputFormat(validateOutput)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		report, err := newValidateReport(cfg)
		if err != nil {
			return err
		}
		return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), report)
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text", "output format: text, json, yaml")
	rootCmd.AddCommand(validateCmd)
}

// ValidateReport summarises a valid configuration.
type ValidateReport struct {
	ListenAddress  string    `json:"listen_address"`
	MetricsPath    string    `json:"metrics_path"`
	LogPath        string    `json:"log_path"`
	MatchedFiles   []string  `json:"matched_files"`
	Mode           string    `json:"mode"`
	StatusGrouping string    `json:"status_grouping"`
	MetricName     string    `json:"metric_name"`
	Quantiles      []float64 `json:"quantiles,omitempty"`
	SelfMetrics    bool      `json:"self_metrics"`
}

func newValidateReport(cfg *config.Config) (ValidateReport, error) {
	matches, err := filepath.Glob(cfg.Source.LogPath)
	if err != nil {
		return ValidateReport{}, cli.NewConfigError("source.log_path", err.Error())
	}

	r := ValidateReport{
		ListenAddress:  cfg.Server.ListenAddress,
		MetricsPath:    cfg.Server.MetricsPath,
		LogPath:        cfg.Source.LogPath,
		MatchedFiles:   matches,
		Mode:           cfg.Exporter.Mode,
		StatusGrouping: cfg.Exporter.StatusGrouping,
		MetricName:     cfg.Exporter.MetricName,
		SelfMetrics:    cfg.Exporter.SelfMetricsEnabled(),
	}
	if r.MatchedFiles == nil {
		r.MatchedFiles = []string{}
	}
	if cfg.Exporter.Mode == config.ModeSummary {
		r.Quantiles = cfg.Exporter.Quantiles
	}
	return r, nil
}

func (r ValidateReport) String() string {
	var sb strings.Builder
	sb.WriteString("configuration is valid\n")
	fmt.Fprintf(&sb, "  listen:          %s%s\n", r.ListenAddress, r.MetricsPath)
	fmt.Fprintf(&sb, "  log path:        %s (%d files)\n", r.LogPath, len(r.MatchedFiles))
	for _, f := range r.MatchedFiles {
		fmt.Fprintf(&sb, "    - %s\n", f)
	}
	fmt.Fprintf(&sb, "  mode:            %s\n", r.Mode)
	fmt.Fprintf(&sb, "  status grouping: %s\n", r.StatusGrouping)
	fmt.Fprintf(&sb, "  metric:          %s\n", r.MetricName)
	if len(r.Quantiles) > 0 {
		fmt.Fprintf(&sb, "  quantiles:       %v\n", r.Quantiles)
	}
	fmt.Fprintf(&sb, "  self metrics:    %t", r.SelfMetrics)
	return sb.String()
}
