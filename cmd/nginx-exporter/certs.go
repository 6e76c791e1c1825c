package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	sectls "mercator-hq/nginx-exporter/pkg/security/tls"
)

var certsFlags struct {
	hosts    string
	org      string
	validity int
	output   string
}

var certsCmd = &cobra.Command{
	Use:   "certs",
	Short: "Certificate helpers for serving metrics over TLS",
}

var certsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a self-signed certificate",
	Long: `Generate a self-signed ECDSA certificate and key for trying out TLS on the
metrics endpoint. Use a certificate from a trusted CA in production.

Examples:
  nginx-exporter certs generate --host localhost,127.0.0.1 --output certs/

Then point server.tls.cert_file and server.tls.key_file at the files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if certsFlags.validity <= 0 {
			return fmt.Errorf("validity must be positive, got %d days", certsFlags.validity)
		}

		certPath, keyPath, err := sectls.WriteSelfSigned(certsFlags.output, sectls.GenerateOptions{
			Hosts:        strings.Split(certsFlags.hosts, ","),
			Organization: certsFlags.org,
			ValidFor:     time.Duration(certsFlags.validity) * 24 * time.Hour,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "certificate: %s\n", certPath)
		fmt.Fprintf(out, "private key: %s\n", keyPath)
		return nil
	},
}

func init() {
	certsGenerateCmd.Flags().StringVar(&certsFlags.hosts, "host", "localhost", "comma-separated hostnames and IPs")
	certsGenerateCmd.Flags().StringVar(&certsFlags.org, "org", "nginx-exporter", "organization name")
	certsGenerateCmd.Flags().IntVar(&certsFlags.validity, "validity", 365, "validity in days")
	certsGenerateCmd.Flags().StringVarP(&certsFlags.output, "output", "o", "certs", "output directory")

	certsCmd.AddCommand(certsGenerateCmd)
	rootCmd.AddCommand(certsCmd)
}
