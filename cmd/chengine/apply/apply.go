package apply

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"github.com/transferia/chengine/cmd/chengine/config"
	"github.com/transferia/chengine/cmd/chengine/render"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/clickhouse/conn"
	"github.com/transferia/chengine/pkg/clickhouse/dao"
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
	"github.com/transferia/chengine/pkg/stats"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const pingRetries = 5

func ApplyCommand(engineStats *stats.EngineStats) *cobra.Command {
	var requestPath string
	var onCluster bool
	var skipExisting bool

	applyCommand := &cobra.Command{
		Use:     "apply",
		Short:   "Create tables of request in ClickHouse",
		Example: "./chengine apply --config ./tables.yaml --on-cluster",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := config.RequestFromYaml(&requestPath)
			if err != nil {
				return xerrors.Errorf("unable to load request: %w", err)
			}
			if request.Connection == nil {
				return coded.Errorf(codes.InvalidConfig, "connection is required to apply request")
			}

			db, err := conn.ConnectNative(request.Connection, logger.Log)
			if err != nil {
				return xerrors.Errorf("unable to connect: %w", err)
			}
			defer db.Close()
			if err := conn.Ping(cmd.Context(), db, logger.Log, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pingRetries)); err != nil {
				return err
			}

			ddlDAO := dao.NewDDLDAO(db, logger.Log, engineStats)
			opts := engines.DDLOptions{IfNotExists: true, Cluster: ""}
			if onCluster {
				opts.Cluster, err = ddlDAO.ResolveCluster(cmd.Context(), request.Connection.Cluster)
				if err != nil {
					return xerrors.Errorf("unable to resolve cluster: %w", err)
				}
			}

			ddls, err := render.BuildDDLs(request, opts, engineStats)
			if err != nil {
				return err
			}
			return Apply(cmd.Context(), ddlDAO, ddls, skipExisting)
		},
	}
	applyCommand.Flags().StringVar(&requestPath, "config", "./tables.yaml", "path to yaml file with tables and connection")
	applyCommand.Flags().BoolVar(&onCluster, "on-cluster", false, "create tables on every host of the cluster")
	applyCommand.Flags().BoolVar(&skipExisting, "skip-existing", false, "do not send queries for tables which already exist")

	return applyCommand
}

// Apply executes queries one by one and stops on the first failure.
func Apply(ctx context.Context, ddlDAO *dao.DDLDAO, ddls []*schema.TableDDL, skipExisting bool) error {
	for _, ddl := range ddls {
		table := ddl.Table()
		if skipExisting {
			exists, err := ddlDAO.TableExists(ctx, table.Database, table.Name)
			if err != nil {
				return xerrors.Errorf("unable to check table %s: %w", table.String(), err)
			}
			if exists {
				logger.Log.Infof("Table %s already exists, skipping", table.String())
				continue
			}
		}
		if err := ddlDAO.CreateTable(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
