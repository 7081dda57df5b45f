package conn

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// NewTLS returns nil config when SSL is disabled.
func NewTLS(params *ConnParams) (*tls.Config, error) {
	if !params.SSLEnabled {
		return nil, nil
	}
	if params.CACertPath == "" {
		return &tls.Config{MinVersion: tls.VersionTLS12}, nil
	}

	pem, err := os.ReadFile(params.CACertPath)
	if err != nil {
		return nil, xerrors.Errorf("unable to read CA certificate %s: %w", params.CACertPath, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, xerrors.Errorf("no certificates found in %s", params.CACertPath)
	}
	return &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}, nil
}
