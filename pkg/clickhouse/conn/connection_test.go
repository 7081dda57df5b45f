package conn

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/errors/codes"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestGetClickhouseOptions(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		opts, err := GetClickhouseOptions(&ConnParams{
			Hosts:    []string{"ch-1", "ch-2:9001"},
			Database: "db",
			User:     "user",
			Password: "secret",
		})
		require.NoError(t, err)
		require.Equal(t, []string{"ch-1:9000", "ch-2:9001"}, opts.Addr)
		require.Equal(t, clickhouse.Auth{Database: "db", Username: "user", Password: "secret"}, opts.Auth)
		require.Nil(t, opts.TLS)
		require.Equal(t, clickhouse.CompressionLZ4, opts.Compression.Method)
	})

	t.Run("secure", func(t *testing.T) {
		opts, err := GetClickhouseOptions(&ConnParams{Hosts: []string{"ch-1", "[::1]:9441"}, SSLEnabled: true})
		require.NoError(t, err)
		require.Equal(t, []string{"ch-1:9440", "[::1]:9441"}, opts.Addr)
		require.NotNil(t, opts.TLS)
		require.Nil(t, opts.TLS.RootCAs)
	})

	t.Run("no hosts", func(t *testing.T) {
		_, err := GetClickhouseOptions(&ConnParams{})
		require.Error(t, err)
		require.True(t, codes.InvalidConfig.Contains(err))
	})

	t.Run("bad CA file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0o600))
		_, err := GetClickhouseOptions(&ConnParams{Hosts: []string{"ch-1"}, SSLEnabled: true, CACertPath: path})
		require.Error(t, err)

		_, err = GetClickhouseOptions(&ConnParams{Hosts: []string{"ch-1"}, SSLEnabled: true, CACertPath: filepath.Join(t.TempDir(), "missing.pem")})
		require.Error(t, err)
	})
}

var errRefused = xerrors.New("connection refused")

func TestPing(t *testing.T) {
	t.Run("retries", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errRefused)
		mock.ExpectPing()

		require.NoError(t, Ping(context.Background(), db, logger.Log, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("gives up", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errRefused)
		mock.ExpectPing().WillReturnError(errRefused)

		err = Ping(context.Background(), db, logger.Log, backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 1))
		require.ErrorIs(t, err, errRefused)
		require.True(t, codes.Dial.Contains(err))
	})
}
