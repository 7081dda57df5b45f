package engines

import (
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	parser "github.com/transferia/chengine/pkg/clickhouse/schema/ddl_parser"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ParseEngine restores engine from its definition as stored in system.tables.engine_full (or rendered by AttachedEngine.SQL).
// Shared* engines of ClickHouse Cloud are read as their Replicated* counterparts.
func ParseEngine(definition string) (Engine, error) {
	def, err := parser.ParseDefinition(definition)
	if err != nil {
		return nil, &InvalidDefinitionError{Definition: definition, Err: err}
	}

	name, _ := fromShared(def.Engine)
	kind, err := ParseKind(name)
	if err != nil {
		return nil, err
	}

	args := Args{
		MergeTreeParams: reflectParams(def),
		TablePath:       "",
		ReplicaName:     "",
		Version:         "",
		IsDeleted:       "",
		SumColumns:      nil,
	}

	params := def.Params
	if kind.IsReplicated() {
		if len(params) < 2 {
			return nil, &InvalidDefinitionError{
				Definition: definition,
				Err:        xerrors.Errorf("%s requires table path and replica name, got %d arguments", kind, len(params)),
			}
		}
		var ok bool
		if args.TablePath, ok = parser.UnquoteString(params[0]); !ok {
			return nil, &InvalidDefinitionError{Definition: definition, Err: xerrors.Errorf("table path %s is not a string literal", params[0])}
		}
		if args.ReplicaName, ok = parser.UnquoteString(params[1]); !ok {
			return nil, &InvalidDefinitionError{Definition: definition, Err: xerrors.Errorf("replica name %s is not a string literal", params[1])}
		}
		params = params[2:]
	}

	switch kind.Base() {
	case ReplacingMergeTree:
		if len(params) > 2 {
			return nil, &InvalidDefinitionError{
				Definition: definition,
				Err:        xerrors.Errorf("%s accepts at most version and is_deleted columns, got %d arguments", kind, len(params)),
			}
		}
		if len(params) > 0 {
			args.Version = params[0]
		}
		if len(params) > 1 {
			args.IsDeleted = params[1]
		}
	case SummingMergeTree:
		if len(params) > 1 {
			return nil, &InvalidDefinitionError{
				Definition: definition,
				Err:        xerrors.Errorf("%s accepts single tuple of columns to sum, got %d arguments", kind, len(params)),
			}
		}
		if len(params) == 1 {
			columns, err := parser.SplitKeys(params[0])
			if err != nil {
				return nil, &InvalidDefinitionError{Definition: definition, Err: err}
			}
			args.SumColumns = columns
		}
	default:
		if len(params) > 0 {
			return nil, &InvalidDefinitionError{
				Definition: definition,
				Err:        xerrors.Errorf("%s has no parameters, got %d arguments", kind, len(params)),
			}
		}
	}

	engine, err := New(kind, args)
	if err != nil {
		return nil, xerrors.Errorf("unable to restore engine from %q: %w", definition, err)
	}
	return engine, nil
}

// reflectParams maps clauses to params. A lone ORDER BY is the primary key as well, so it is read as primary key.
func reflectParams(def *parser.Definition) MergeTreeParams {
	params := MergeTreeParams{
		PrimaryKey:     nil,
		OrderBy:        nil,
		FullTupleOrder: false,
		PartitionBy:    def.PartitionBy,
		SampleBy:       def.SampleBy,
		TTL:            def.TTL,
		Settings:       nil,
	}
	switch {
	case len(def.OrderBy) == 0 && len(def.PrimaryKey) == 0:
		params.FullTupleOrder = true
	case len(def.OrderBy) == 0:
		// sorting key defaults to primary key
		params.PrimaryKey = def.PrimaryKey
	case len(def.PrimaryKey) == 0:
		params.PrimaryKey = def.OrderBy
	default:
		params.PrimaryKey = def.PrimaryKey
		params.OrderBy = def.OrderBy
	}
	for _, s := range def.Settings {
		params.Settings = append(params.Settings, Setting{Name: s.Name, Value: s.Value})
	}
	return params
}

// Reflect restores engine from definition and attaches it to table.
func Reflect(table *schema.Table, definition string) (*AttachedEngine, error) {
	engine, err := ParseEngine(definition)
	if err != nil {
		return nil, err
	}
	return engine.Attach(table)
}

// ReflectReplacing restores ReplacingMergeTree engine (replicated or not) with its version and is_deleted columns.
func ReflectReplacing(definition string) (*ReplacingMergeTreeEngine, error) {
	engine, err := ParseEngine(definition)
	if err != nil {
		return nil, err
	}
	replacing, ok := engine.(*ReplacingMergeTreeEngine)
	if !ok {
		return nil, &InvalidDefinitionError{
			Definition: definition,
			Err:        xerrors.Errorf("%s is not a ReplacingMergeTree engine", engine.Kind()),
		}
	}
	return replacing, nil
}
