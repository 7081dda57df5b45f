package conn

import (
	"context"
	"database/sql"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func ConnectNative(params *ConnParams, lgr log.Logger) (*sql.DB, error) {
	opts, err := GetClickhouseOptions(params)
	if err != nil {
		return nil, err
	}
	lgr.Info("Opening ClickHouse connection", logger.Sanitized("params", params))
	return clickhouse.OpenDB(opts), nil
}

func GetClickhouseOptions(params *ConnParams) (*clickhouse.Options, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	tlsConfig, err := NewTLS(params)
	if err != nil {
		return nil, xerrors.Errorf("unable to load tls: %w", err)
	}

	return &clickhouse.Options{
		TLS:  tlsConfig,
		Addr: params.Addrs(),
		Auth: clickhouse.Auth{
			Database: params.Database,
			Username: params.User,
			Password: params.Password,
		},
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
		DialTimeout: 5 * time.Second,
		ReadTimeout: 5 * time.Minute,
	}, nil
}

// Ping checks connectivity retrying with b, the last failure is reported with dial error code.
func Ping(ctx context.Context, db *sql.DB, lgr log.Logger, b backoff.BackOff) error {
	if err := backoff.RetryNotify(
		func() error {
			return db.PingContext(ctx)
		},
		backoff.WithContext(b, ctx),
		func(err error, next time.Duration) {
			lgr.Warn("ClickHouse ping failed, will retry", log.Duration("next", next), log.Error(err))
		},
	); err != nil {
		return coded.Errorf(codes.Dial, "unable to ping ClickHouse: %w", err)
	}
	return nil
}
