package tls

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mercator-hq/nginx-exporter/pkg/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCert(t *testing.T, dir string, opts GenerateOptions) (string, string) {
	t.Helper()
	certPath, keyPath, err := WriteSelfSigned(dir, opts)
	if err != nil {
		t.Fatalf("WriteSelfSigned: %v", err)
	}
	return certPath, keyPath
}

func leaf(t *testing.T, cert *tls.Certificate) *x509.Certificate {
	t.Helper()
	if cert == nil || len(cert.Certificate) == 0 {
		t.Fatal("no certificate")
	}
	x, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return x
}

func TestGenerateSelfSigned(t *testing.T) {
	certPEM, keyPEM, err := GenerateSelfSigned(GenerateOptions{
		Hosts:        []string{"exporter.local", "127.0.0.1"},
		Organization: "Test",
		ValidFor:     48 * time.Hour,
	})
	if err != nil {
		t.Fatalf("GenerateSelfSigned: %v", err)
	}

	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		t.Fatalf("X509KeyPair: %v", err)
	}
	x := leaf(t, &pair)
	if x.Subject.CommonName != "exporter.local" {
		t.Errorf("CN = %q", x.Subject.CommonName)
	}
	if len(x.DNSNames) != 1 || len(x.IPAddresses) != 1 {
		t.Errorf("SANs = %v %v", x.DNSNames, x.IPAddresses)
	}
	if days, soon := ExpiresSoon(x); !soon || days > 2 {
		t.Errorf("ExpiresSoon = %d, %t", days, soon)
	}
	if err := ValidateCertificate(&pair); err != nil {
		t.Errorf("ValidateCertificate: %v", err)
	}

	if _, _, err := GenerateSelfSigned(GenerateOptions{}); err == nil {
		t.Error("expected error without hosts")
	}
}

func TestWriteSelfSigned_KeyPermissions(t *testing.T) {
	_, keyPath := writeCert(t, t.TempDir(), GenerateOptions{Hosts: []string{"localhost"}})
	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("key mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestValidateCertificate_Invalid(t *testing.T) {
	if err := ValidateCertificate(nil); err == nil {
		t.Error("nil certificate should fail")
	}
	if err := ValidateCertificate(&tls.Certificate{}); err == nil {
		t.Error("empty chain should fail")
	}
}

func TestNewServerConfig(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeCert(t, dir, GenerateOptions{Hosts: []string{"localhost"}})

	tests := []struct {
		name    string
		cfg     *config.TLSConfig
		wantNil bool
		wantErr bool
		check   func(t *testing.T, c *tls.Config)
	}{
		{name: "nil config", cfg: nil, wantNil: true},
		{name: "disabled", cfg: &config.TLSConfig{}, wantNil: true},
		{
			name: "defaults to 1.2",
			cfg:  &config.TLSConfig{Enabled: true, CertFile: certPath, KeyFile: keyPath, MinVersion: "1.2"},
			check: func(t *testing.T, c *tls.Config) {
				if c.MinVersion != tls.VersionTLS12 {
					t.Errorf("MinVersion = %x", c.MinVersion)
				}
				if c.ClientAuth != tls.NoClientCert {
					t.Errorf("ClientAuth = %v", c.ClientAuth)
				}
			},
		},
		{
			name: "client CA verify if given",
			cfg: &config.TLSConfig{
				Enabled: true, CertFile: certPath, KeyFile: keyPath,
				MinVersion: "1.3", ClientCAFile: certPath, ClientAuthType: "verify_if_given",
			},
			check: func(t *testing.T, c *tls.Config) {
				if c.MinVersion != tls.VersionTLS13 {
					t.Errorf("MinVersion = %x", c.MinVersion)
				}
				if c.ClientAuth != tls.VerifyClientCertIfGiven || c.ClientCAs == nil {
					t.Errorf("ClientAuth = %v", c.ClientAuth)
				}
			},
		},
		{
			name:    "missing key",
			cfg:     &config.TLSConfig{Enabled: true, CertFile: certPath, KeyFile: filepath.Join(dir, "nope.pem")},
			wantErr: true,
		},
		{
			name:    "client CA without certificates",
			cfg:     &config.TLSConfig{Enabled: true, CertFile: certPath, KeyFile: keyPath, ClientCAFile: keyPath},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, reloader, err := NewServerConfig(tt.cfg, quietLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantNil {
				if c != nil || reloader != nil {
					t.Fatal("expected nil config")
				}
				return
			}
			got, err := c.GetCertificate(&tls.ClientHelloInfo{})
			if err != nil || got == nil {
				t.Fatalf("GetCertificate = %v, %v", got, err)
			}
			tt.check(t, c)
		})
	}
}

func TestCertificateReloader_PicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeCert(t, dir, GenerateOptions{Hosts: []string{"first"}})

	r := NewCertificateReloader(certPath, keyPath, 10*time.Millisecond, quietLogger())
	if err := r.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cn := leaf(t, r.GetCertificate()).Subject.CommonName; cn != "first" {
		t.Fatalf("CN = %q", cn)
	}

	// Replace both files and push their mtimes forward so the change is
	// visible on filesystems with coarse timestamps.
	writeCert(t, dir, GenerateOptions{Hosts: []string{"second"}})
	future := time.Now().Add(time.Hour)
	for _, p := range []string{certPath, keyPath} {
		if err := os.Chtimes(p, future, future); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	deadline := time.Now().Add(5 * time.Second)
	for leaf(t, r.GetCertificate()).Subject.CommonName != "second" {
		if time.Now().After(deadline) {
			t.Fatal("certificate was not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCertificateReloader_KeepsOldOnFailure(t *testing.T) {
	dir := t.TempDir()
	certPath, keyPath := writeCert(t, dir, GenerateOptions{Hosts: []string{"stable"}})

	r := NewCertificateReloader(certPath, keyPath, time.Hour, quietLogger())
	if err := r.reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if err := os.WriteFile(certPath, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("junk")}), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(certPath, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r.check()
	if cn := leaf(t, r.GetCertificate()).Subject.CommonName; cn != "stable" {
		t.Errorf("CN = %q, previous certificate should be kept", cn)
	}
}
