package engines

import (
	"strings"
)

const tableNameVariable = "table_name"

// ReplicationParams are Keeper coordinates of replicated table.
type ReplicationParams struct {
	TablePath   string
	ReplicaName string
}

func newReplicationParams(tablePath, replicaName string) (*ReplicationParams, error) {
	if tablePath == "" {
		return nil, &MissingConfigError{Field: FieldTablePath}
	}
	if replicaName == "" {
		return nil, &MissingConfigError{Field: FieldReplicaName}
	}
	return &ReplicationParams{
		TablePath:   tablePath,
		ReplicaName: replicaName,
	}, nil
}

// replicationFromConfig checks table_path before replica_name, so a config without both reports table_path.
func replicationFromConfig(cfg *Config, tableName string) (*ReplicationParams, error) {
	if cfg == nil || cfg.TablePath == "" {
		return nil, &MissingConfigError{Field: FieldTablePath}
	}
	tablePath := cfg.TablePath
	if strings.Contains(tablePath, "$") {
		substituted, err := substitute(tablePath, map[string]string{tableNameVariable: tableName})
		if err != nil {
			return nil, err
		}
		tablePath = substituted
	}
	return newReplicationParams(tablePath, cfg.ReplicaName)
}

func (p *ReplicationParams) clone() *ReplicationParams {
	if p == nil {
		return nil
	}
	return &ReplicationParams{
		TablePath:   p.TablePath,
		ReplicaName: p.ReplicaName,
	}
}
