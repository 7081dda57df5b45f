package engines

import (
	"fmt"
	"slices"
	"strings"

	"github.com/transferia/chengine/pkg/clickhouse/schema"
	parser "github.com/transferia/chengine/pkg/clickhouse/schema/ddl_parser"
)

// AttachedEngine is an engine bound to a table: every column it references is resolved.
type AttachedEngine struct {
	kind        Kind
	table       *schema.Table
	params      MergeTreeParams
	primaryKey  []Key
	orderBy     []Key
	replication *ReplicationParams

	parameters []*schema.Column
	// parameters are rendered as single tuple argument, like in SummingMergeTree((a, b))
	tupleParameters bool
}

func (e *AttachedEngine) Kind() Kind {
	return e.kind
}

func (e *AttachedEngine) Table() *schema.Table {
	return e.table
}

func (e *AttachedEngine) Params() MergeTreeParams {
	return e.params.clone()
}

func (e *AttachedEngine) PrimaryKey() []Key {
	return slices.Clone(e.primaryKey)
}

func (e *AttachedEngine) OrderBy() []Key {
	return slices.Clone(e.orderBy)
}

// SortingKey is the effective ORDER BY: explicit sorting key, primary key otherwise, nil for full tuple ordering.
func (e *AttachedEngine) SortingKey() []Key {
	if len(e.orderBy) > 0 {
		return e.OrderBy()
	}
	return e.PrimaryKey()
}

func (e *AttachedEngine) FullTupleOrder() bool {
	return e.params.FullTupleOrder
}

func (e *AttachedEngine) Replication() *ReplicationParams {
	return e.replication.clone()
}

// Parameters are the engine own arguments, after replication ones:
// [version, is_deleted], [version] or nothing for ReplacingMergeTree, columns to sum for SummingMergeTree.
func (e *AttachedEngine) Parameters() []*schema.Column {
	return slices.Clone(e.parameters)
}

func (e *AttachedEngine) ParameterNames() []string {
	result := make([]string, 0, len(e.parameters))
	for _, col := range e.parameters {
		result = append(result, col.Name)
	}
	return result
}

// String renders engine call, e.g. ReplicatedReplacingMergeTree('/clickhouse/tables/{shard}/t', '{replica}', ver).
func (e *AttachedEngine) String() string {
	var args []string
	if e.replication != nil {
		args = append(args, parser.QuoteString(e.replication.TablePath), parser.QuoteString(e.replication.ReplicaName))
	}
	params := make([]string, 0, len(e.parameters))
	for _, col := range e.parameters {
		params = append(params, renderIdent(col.Name))
	}
	if e.tupleParameters {
		params = []string{renderTuple(params)}
	}
	args = append(args, params...)

	if len(args) == 0 {
		return string(e.kind)
	}
	return fmt.Sprintf("%s(%s)", e.kind, strings.Join(args, ", "))
}

// SQL renders full engine definition in the order ClickHouse keeps it in system.tables.engine_full.
func (e *AttachedEngine) SQL() string {
	parts := []string{e.String()}
	if e.params.PartitionBy != "" {
		parts = append(parts, "PARTITION BY "+e.params.PartitionBy)
	}
	if len(e.primaryKey) > 0 && len(e.orderBy) > 0 {
		parts = append(parts, "PRIMARY KEY "+renderKeys(e.primaryKey))
	}
	if sortingKey := e.SortingKey(); len(sortingKey) > 0 {
		parts = append(parts, "ORDER BY "+renderKeys(sortingKey))
	} else {
		parts = append(parts, "ORDER BY "+FullTuple)
	}
	if e.params.SampleBy != "" {
		parts = append(parts, "SAMPLE BY "+e.params.SampleBy)
	}
	if e.params.TTL != "" {
		parts = append(parts, "TTL "+e.params.TTL)
	}
	if len(e.params.Settings) > 0 {
		settings := make([]string, 0, len(e.params.Settings))
		for _, s := range e.params.Settings {
			settings = append(settings, fmt.Sprintf("%s = %s", s.Name, s.Value))
		}
		parts = append(parts, "SETTINGS "+strings.Join(settings, ", "))
	}
	return strings.Join(parts, " ")
}

func renderKeys(keys []Key) string {
	rendered := make([]string, 0, len(keys))
	for _, k := range keys {
		rendered = append(rendered, k.String())
	}
	return renderTuple(rendered)
}

func renderTuple(items []string) string {
	if len(items) == 1 {
		return items[0]
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// renderIdent quotes column name only when it is not a plain identifier.
func renderIdent(name string) string {
	if schema.IsIdent(name) && !strings.ContainsAny(name, "`\"") {
		return name
	}
	return schema.QuoteIdent(name)
}
