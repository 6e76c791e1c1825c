package tls

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

// loadedPair is one generation of the certificate files.
type loadedPair struct {
	cert    *tls.Certificate
	leaf    *x509.Certificate
	certMod time.Time
	keyMod  time.Time
}

// CertificateReloader serves a certificate pair from disk and picks up
// renewed files without a restart.
type CertificateReloader struct {
	certFile string
	keyFile  string
	interval time.Duration
	logger   *slog.Logger

	current atomic.Pointer[loadedPair]
}

// NewCertificateReloader creates a reloader. Nothing is read until the
// first reload.
func NewCertificateReloader(certFile, keyFile string, interval time.Duration, logger *slog.Logger) *CertificateReloader {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CertificateReloader{
		certFile: certFile,
		keyFile:  keyFile,
		interval: interval,
		logger:   logger.With("cert_file", certFile, "key_file", keyFile),
	}
}

// Run polls the files every interval until ctx is done. A pair that fails
// to load is logged and the previous one keeps serving.
func (r *CertificateReloader) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.check()
		}
	}
}

func (r *CertificateReloader) check() {
	certMod, keyMod, err := r.modTimes()
	if err != nil {
		r.logger.Warn("cannot stat certificate files", "error", err)
		return
	}
	if cur := r.current.Load(); cur != nil && cur.certMod.Equal(certMod) && cur.keyMod.Equal(keyMod) {
		return
	}

	if err := r.reload(); err != nil {
		r.logger.Error("certificate reload failed, keeping previous certificate", "error", err)
		return
	}
	r.logCertificateInfo()
}

func (r *CertificateReloader) modTimes() (cert, key time.Time, err error) {
	ci, err := os.Stat(r.certFile)
	if err != nil {
		return cert, key, err
	}
	ki, err := os.Stat(r.keyFile)
	if err != nil {
		return cert, key, err
	}
	return ci.ModTime(), ki.ModTime(), nil
}

// reload reads and validates both files and swaps them in.
func (r *CertificateReloader) reload() error {
	certMod, keyMod, err := r.modTimes()
	if err != nil {
		return err
	}
	pair, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return fmt.Errorf("load key pair: %w", err)
	}
	if err := ValidateCertificate(&pair); err != nil {
		return err
	}
	leaf, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return fmt.Errorf("parse certificate: %w", err)
	}

	r.current.Store(&loadedPair{cert: &pair, leaf: leaf, certMod: certMod, keyMod: keyMod})
	return nil
}

// GetCertificate returns the certificate being served, or nil before the
// first successful load.
func (r *CertificateReloader) GetCertificate() *tls.Certificate {
	if cur := r.current.Load(); cur != nil {
		return cur.cert
	}
	return nil
}

// GetCertificateFunc adapts the reloader to tls.Config.GetCertificate.
func (r *CertificateReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		cert := r.GetCertificate()
		if cert == nil {
			return nil, fmt.Errorf("no certificate loaded from %s", r.certFile)
		}
		return cert, nil
	}
}

func (r *CertificateReloader) logCertificateInfo() {
	cur := r.current.Load()
	if cur == nil {
		return
	}

	days, soon := ExpiresSoon(cur.leaf)
	attrs := []any{
		"subject", cur.leaf.Subject.CommonName,
		"issuer", cur.leaf.Issuer.CommonName,
		"expires_in_days", days,
		"expires_at", cur.leaf.NotAfter.Format(time.RFC3339),
	}
	if soon {
		r.logger.Warn("certificate expires soon", attrs...)
		return
	}
	r.logger.Info("certificate loaded", attrs...)
}
