package engines

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Column names of not replicated ReplacingMergeTree built by Create. They are a convention of generated tables
// and are not configurable.
const (
	DefaultVersionColumn   = "ReportDate"
	DefaultIsDeletedColumn = "_is_deleted"
)

// Create builds engine of given kind for table tableName.
//
// Table is ordered by primaryKeys, or by full tuple when there are none. Replicated kinds take table_path
// and replica_name from cfg, table_path is checked first. Not replicated ReplacingMergeTree always gets
// DefaultVersionColumn and DefaultIsDeletedColumn.
func Create(kind string, primaryKeys []string, tableName string, cfg *Config) (Engine, error) {
	engineKind, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}

	var args Args
	if len(primaryKeys) > 0 {
		args.PrimaryKey = append([]string(nil), primaryKeys...)
	} else {
		args.FullTupleOrder = true
	}

	if engineKind.IsReplicated() {
		replication, err := replicationFromConfig(cfg, tableName)
		if err != nil {
			return nil, xerrors.Errorf("unable to build %s engine for table %s: %w", engineKind, tableName, err)
		}
		args.TablePath = replication.TablePath
		args.ReplicaName = replication.ReplicaName
	}

	if engineKind == ReplacingMergeTree {
		args.Version = DefaultVersionColumn
		args.IsDeleted = DefaultIsDeletedColumn
	}

	return New(engineKind, args)
}
