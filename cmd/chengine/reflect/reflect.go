package reflect

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/transferia/chengine/cmd/chengine/config"
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

type conversion struct {
	notReplicated bool
	tablePath     string
	replicaName   string
}

func ReflectCommand(engineStats *stats.EngineStats) *cobra.Command {
	var requestPath string
	var database string
	var table string
	var definition string
	var columns string
	var convert conversion

	reflectCommand := &cobra.Command{
		Use:   "reflect",
		Short: "Restore table engine from its definition",
		Example: "./chengine reflect --config ./tables.yaml --database db --table users\n" +
			"./chengine reflect --definition \"ReplacingMergeTree(v) ORDER BY id\" --columns id:UInt64,v:UInt64",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var attached *engines.AttachedEngine
			if definition != "" {
				tableSchema, err := ParseColumns(database, table, columns)
				if err != nil {
					return err
				}
				attached, err = engines.Reflect(tableSchema, definition)
				if err != nil {
					engineStats.Failed(stats.OperationReflect, err)
					return xerrors.Errorf("unable to reflect engine: %w", err)
				}
				engineStats.EngineReflected(attached.Kind().String())
			} else {
				request, err := config.RequestFromYaml(&requestPath)
				if err != nil {
					return xerrors.Errorf("unable to load request: %w", err)
				}
				if request.Connection == nil {
					return coded.Errorf(codes.InvalidConfig, "connection is required to reflect existing table")
				}
				db, err := conn.ConnectNative(request.Connection, logger.Log)
				if err != nil {
					return xerrors.Errorf("unable to connect: %w", err)
				}
				defer db.Close()
				attached, err = dao.NewDDLDAO(db, logger.Log, engineStats).ReflectEngine(cmd.Context(), database, table)
				if err != nil {
					return err
				}
			}

			converted, err := convert.apply(attached)
			if err != nil {
				return err
			}
			Describe(cmd.OutOrStdout(), converted)
			return nil
		},
	}
	reflectCommand.Flags().StringVar(&requestPath, "config", "./tables.yaml", "path to yaml file with connection")
	reflectCommand.Flags().StringVar(&database, "database", "", "database of the table")
	reflectCommand.Flags().StringVar(&table, "table", "", "name of the table")
	reflectCommand.Flags().StringVar(&definition, "definition", "", "engine definition, reflect it offline instead of querying ClickHouse")
	reflectCommand.Flags().StringVar(&columns, "columns", "", "columns of offline table as name:type pairs separated by commas")
	reflectCommand.Flags().BoolVar(&convert.notReplicated, "not-replicated", false, "convert engine to its not replicated counterpart")
	reflectCommand.Flags().StringVar(&convert.tablePath, "table-path", "", "convert engine to replicated one with given zookeeper path")
	reflectCommand.Flags().StringVar(&convert.replicaName, "replica-name", "{replica}", "replica name of converted replicated engine")
	reflectCommand.MarkFlagsMutuallyExclusive("not-replicated", "table-path")

	return reflectCommand
}

func (c conversion) apply(attached *engines.AttachedEngine) (*engines.AttachedEngine, error) {
	if !c.notReplicated && c.tablePath == "" {
		return attached, nil
	}
	engine, err := engines.ParseEngine(attached.SQL())
	if err != nil {
		return nil, xerrors.Errorf("unable to parse rendered engine: %w", err)
	}
	if c.notReplicated {
		engine = engines.ToNotReplicated(engine)
	} else {
		engine, err = engines.ToReplicated(engine, &engines.Config{TablePath: c.tablePath, ReplicaName: c.replicaName}, attached.Table().Name)
		if err != nil {
			return nil, xerrors.Errorf("unable to convert engine: %w", err)
		}
	}
	return engine.Attach(attached.Table())
}

// ParseColumns builds offline table from "name:type,name:type" list.
func ParseColumns(database, table, columns string) (*schema.Table, error) {
	result := schema.NewTable(database, table)
	if strings.TrimSpace(columns) == "" {
		return result, nil
	}
	for _, pair := range strings.Split(columns, ",") {
		name, typ, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" || typ == "" {
			return nil, coded.Errorf(codes.InvalidConfig, "invalid column %q, expected name:type", pair)
		}
		result.Columns = append(result.Columns, &schema.Column{Name: name, Type: typ})
	}
	return result, nil
}

func Describe(w io.Writer, attached *engines.AttachedEngine) {
	_, _ = fmt.Fprintf(w, "kind: %s\n", attached.Kind())
	if replication := attached.Replication(); replication != nil {
		_, _ = fmt.Fprintf(w, "table_path: %s\n", replication.TablePath)
		_, _ = fmt.Fprintf(w, "replica_name: %s\n", replication.ReplicaName)
	}
	if names := attached.ParameterNames(); len(names) > 0 {
		_, _ = fmt.Fprintf(w, "parameters: %s\n", strings.Join(names, ", "))
	}
	_, _ = fmt.Fprintf(w, "engine: %s\n", attached.SQL())
}
