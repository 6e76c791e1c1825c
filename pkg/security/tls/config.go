package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"

	"mercator-hq/nginx-exporter/pkg/config"
)

// NewServerConfig builds a crypto/tls configuration for the metrics
// listener. The certificate is served through the returned reloader, which
// the caller runs to pick up renewed files.
func NewServerConfig(cfg *config.TLSConfig, logger *slog.Logger) (*tls.Config, *CertificateReloader, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil, nil
	}
	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return nil, nil, fmt.Errorf("cert_file and key_file are required when TLS is enabled")
	}

	reloader := NewCertificateReloader(cfg.CertFile, cfg.KeyFile, cfg.ReloadInterval, logger)
	if err := reloader.reload(); err != nil {
		return nil, nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	reloader.logCertificateInfo()

	// #nosec G402 - MinVersion is validated to 1.2 or 1.3
	tlsConfig := &tls.Config{
		GetCertificate: reloader.GetCertificateFunc(),
		MinVersion:     parseTLSVersion(cfg.MinVersion),
	}

	if cfg.ClientCAFile != "" {
		if err := configureClientAuth(tlsConfig, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to configure client authentication: %w", err)
		}
	}

	return tlsConfig, reloader, nil
}

// parseTLSVersion maps "1.2" and "1.3" onto protocol constants. TLS 1.0
// and 1.1 are never accepted.
func parseTLSVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func configureClientAuth(tlsConfig *tls.Config, cfg *config.TLSConfig) error {
	caCert, err := os.ReadFile(cfg.ClientCAFile)
	if err != nil {
		return fmt.Errorf("failed to read client CA: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return fmt.Errorf("no certificates found in %s", cfg.ClientCAFile)
	}

	tlsConfig.ClientCAs = pool
	switch cfg.ClientAuthType {
	case "verify_if_given":
		tlsConfig.ClientAuth = tls.VerifyClientCertIfGiven
	default:
		tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return nil
}
