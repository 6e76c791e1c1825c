// Package tls serves the metrics endpoint over HTTPS.
//
// NewServerConfig turns the server.tls section into a *tls.Config whose
// certificate comes from a CertificateReloader. Running the reloader
// picks up renewed certificate files without restarting the exporter:
//
//	tlsConfig, reloader, err := tls.NewServerConfig(&cfg.Server.TLS, logger)
//	if err != nil {
//	    return err
//	}
//	go reloader.Run(ctx)
//	ln = cryptotls.NewListener(ln, tlsConfig)
//
// Setting client_ca_file requires scrapers to present a certificate signed
// by that CA (client_auth_type "require") or verifies one only when given
// ("verify_if_given").
//
// GenerateSelfSigned and WriteSelfSigned create throwaway certificates for
// trying out a TLS setup.
package tls
