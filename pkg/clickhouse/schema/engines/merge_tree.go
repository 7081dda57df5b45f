package engines

import (
	"slices"

	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// FullTuple is the sorting expression used when table has no key: ClickHouse requires ORDER BY anyway.
const FullTuple = "tuple()"

type Setting struct {
	Name  string
	Value string
}

// MergeTreeParams are clauses common for the whole MergeTree family.
type MergeTreeParams struct {
	PrimaryKey     []string
	OrderBy        []string
	FullTupleOrder bool
	PartitionBy    string
	SampleBy       string
	TTL            string
	Settings       []Setting
}

func (p MergeTreeParams) clone() MergeTreeParams {
	return MergeTreeParams{
		PrimaryKey:     slices.Clone(p.PrimaryKey),
		OrderBy:        slices.Clone(p.OrderBy),
		FullTupleOrder: p.FullTupleOrder,
		PartitionBy:    p.PartitionBy,
		SampleBy:       p.SampleBy,
		TTL:            p.TTL,
		Settings:       slices.Clone(p.Settings),
	}
}

// Args are constructor arguments of any engine, each engine takes the fields it understands.
type Args struct {
	MergeTreeParams

	TablePath   string
	ReplicaName string

	Version   string
	IsDeleted string

	SumColumns []string
}

type Engine interface {
	Kind() Kind
	Params() MergeTreeParams
	Replication() *ReplicationParams
	Attach(table *schema.Table) (*AttachedEngine, error)

	base() MergeTreeEngine
	withBase(base MergeTreeEngine) Engine
}

// MergeTreeEngine is the generic descriptor of MergeTree family engine. MergeTree and AggregatingMergeTree
// (and their replicated versions) have no parameters of their own and are represented by it as is.
type MergeTreeEngine struct {
	kind        Kind
	params      MergeTreeParams
	replication *ReplicationParams
}

var _ Engine = (*MergeTreeEngine)(nil)

func NewMergeTree(kind Kind, args Args) (*MergeTreeEngine, error) {
	if !IsSupported(kind) {
		return nil, &UnsupportedEngineError{Kind: string(kind)}
	}
	if kind.Base() != MergeTree && kind.Base() != AggregatingMergeTree {
		return nil, xerrors.Errorf("%s engine has parameters of its own, use its constructor", kind)
	}
	base, err := newBase(kind, args)
	if err != nil {
		return nil, err
	}
	return &base, nil
}

func newBase(kind Kind, args Args) (MergeTreeEngine, error) {
	params := args.MergeTreeParams.clone()
	hasKeys := len(params.PrimaryKey) > 0 || len(params.OrderBy) > 0
	if params.FullTupleOrder && hasKeys {
		return MergeTreeEngine{}, xerrors.Errorf("%s: ordering by full tuple is exclusive with ordering keys", kind)
	}
	if !hasKeys {
		params.FullTupleOrder = true
	}

	var replication *ReplicationParams
	if kind.IsReplicated() {
		var err error
		replication, err = newReplicationParams(args.TablePath, args.ReplicaName)
		if err != nil {
			return MergeTreeEngine{}, xerrors.Errorf("%s: %w", kind, err)
		}
	}

	return MergeTreeEngine{
		kind:        kind,
		params:      params,
		replication: replication,
	}, nil
}

func (e *MergeTreeEngine) Kind() Kind {
	return e.kind
}

func (e *MergeTreeEngine) Params() MergeTreeParams {
	return e.params.clone()
}

// Replication is nil for not replicated engines.
func (e *MergeTreeEngine) Replication() *ReplicationParams {
	return e.replication.clone()
}

func (e *MergeTreeEngine) Attach(table *schema.Table) (*AttachedEngine, error) {
	if table == nil {
		return nil, xerrors.New("unable to attach engine to nil table")
	}
	primaryKey, err := resolveKeys(table, e.params.PrimaryKey, RolePrimaryKey)
	if err != nil {
		return nil, xerrors.Errorf("unable to resolve primary key: %w", err)
	}
	orderBy, err := resolveKeys(table, e.params.OrderBy, RoleOrderBy)
	if err != nil {
		return nil, xerrors.Errorf("unable to resolve sorting key: %w", err)
	}
	return &AttachedEngine{
		kind:            e.kind,
		table:           table,
		params:          e.params.clone(),
		primaryKey:      primaryKey,
		orderBy:         orderBy,
		replication:     e.replication.clone(),
		parameters:      nil,
		tupleParameters: false,
	}, nil
}

func (e *MergeTreeEngine) base() MergeTreeEngine {
	return MergeTreeEngine{
		kind:        e.kind,
		params:      e.params.clone(),
		replication: e.replication.clone(),
	}
}

func (e *MergeTreeEngine) withBase(base MergeTreeEngine) Engine {
	return &base
}
