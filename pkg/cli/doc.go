/*
Package cli provides command-line helpers for the nginx-exporter command.

Output Formatting:

The version and validate commands print their results as text, JSON, or YAML:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, info); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
	// ctx is cancelled on the first signal

Errors:

ConfigError and CommandError carry enough context for a useful message,
and ExitCode maps them onto process exit codes.
*/
package cli
