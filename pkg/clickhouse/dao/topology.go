package dao

import (
	"context"
	"database/sql"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

var ErrNoCluster = xerrors.New("unable to resolve cluster name: no clusters in system.clusters")

// ResolveCluster returns configured cluster, otherwise {cluster} macro of the server, otherwise the first cluster it knows.
func (d *DDLDAO) ResolveCluster(ctx context.Context, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	var cluster string
	err := d.db.QueryRowContext(ctx, `select substitution from system.macros where macro = 'cluster';`).Scan(&cluster)
	switch {
	case err == nil:
		return cluster, nil
	case !xerrors.Is(err, sql.ErrNoRows):
		return "", xerrors.Errorf("unable to read cluster macro: %w", err)
	}

	err = d.db.QueryRowContext(ctx, `select cluster from system.clusters limit 1;`).Scan(&cluster)
	switch {
	case err == nil:
		d.lgr.Infof("Cluster macro is not defined, using cluster %s", cluster)
		return cluster, nil
	case xerrors.Is(err, sql.ErrNoRows):
		return "", ErrNoCluster
	default:
		return "", xerrors.Errorf("unable to list clusters: %w", err)
	}
}
