package render

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/transferia/chengine/cmd/chengine/config"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
	"github.com/transferia/chengine/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func RenderCommand(engineStats *stats.EngineStats) *cobra.Command {
	var requestPath string
	var opts engines.DDLOptions

	renderCommand := &cobra.Command{
		Use:     "render",
		Short:   "Print CREATE TABLE queries for tables of request",
		Example: "./chengine render --config ./tables.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := config.RequestFromYaml(&requestPath)
			if err != nil {
				return xerrors.Errorf("unable to load request: %w", err)
			}
			ddls, err := BuildDDLs(request, opts, engineStats)
			if err != nil {
				return err
			}
			for _, ddl := range ddls {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s;\n", ddl.SQL())
			}
			return nil
		},
	}
	renderCommand.Flags().StringVar(&requestPath, "config", "./tables.yaml", "path to yaml file with tables")
	renderCommand.Flags().BoolVar(&opts.IfNotExists, "if-not-exists", true, "add IF NOT EXISTS to queries")
	renderCommand.Flags().StringVar(&opts.Cluster, "cluster", "", "add ON CLUSTER clause with given cluster")

	return renderCommand
}

// BuildDDLs builds CREATE TABLE query of every table in request, it stops on the first failed table.
func BuildDDLs(request *config.Request, opts engines.DDLOptions, engineStats *stats.EngineStats) ([]*schema.TableDDL, error) {
	result := make([]*schema.TableDDL, 0, len(request.Tables))
	for _, table := range request.Tables {
		attached, err := request.Build(table)
		if err != nil {
			engineStats.Failed(stats.OperationBuild, err)
			return nil, err
		}
		engineStats.EngineBuilt(attached.Kind().String())
		logger.Log.Info("Engine built",
			log.String("table", attached.Table().String()),
			log.String("engine", attached.SQL()),
			log.Strings("parameters", attached.ParameterNames()),
		)
		result = append(result, attached.CreateTableDDL(opts))
	}
	return result, nil
}
