package engines

import (
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// SummingMergeTreeEngine sums numeric columns of rows with the same sorting key during merges.
// Without explicit columns ClickHouse sums every numeric column not in the key.
type SummingMergeTreeEngine struct {
	MergeTreeEngine
	columns []*ColumnRef
}

var _ Engine = (*SummingMergeTreeEngine)(nil)

func NewSummingMergeTree(kind Kind, args Args) (*SummingMergeTreeEngine, error) {
	if !IsSupported(kind) {
		return nil, &UnsupportedEngineError{Kind: string(kind)}
	}
	if kind.Base() != SummingMergeTree {
		return nil, xerrors.Errorf("%s is not a SummingMergeTree engine", kind)
	}
	base, err := newBase(kind, args)
	if err != nil {
		return nil, err
	}

	result := &SummingMergeTreeEngine{
		MergeTreeEngine: base,
		columns:         make([]*ColumnRef, 0, len(args.SumColumns)),
	}
	for _, name := range args.SumColumns {
		result.columns = append(result.columns, newColumnRef(name, RoleSum))
	}
	return result, nil
}

func (e *SummingMergeTreeEngine) SumColumns() []string {
	result := make([]string, 0, len(e.columns))
	for _, ref := range e.columns {
		result = append(result, ref.Name())
	}
	return result
}

func (e *SummingMergeTreeEngine) Attach(table *schema.Table) (*AttachedEngine, error) {
	attached, err := e.MergeTreeEngine.Attach(table)
	if err != nil {
		return nil, err
	}
	for _, ref := range e.columns {
		col, err := ref.resolve(table)
		if err != nil {
			return nil, xerrors.Errorf("unable to attach %s: %w", e.kind, err)
		}
		attached.parameters = append(attached.parameters, col)
	}
	attached.tupleParameters = len(attached.parameters) > 0
	return attached, nil
}

func (e *SummingMergeTreeEngine) withBase(base MergeTreeEngine) Engine {
	return &SummingMergeTreeEngine{
		MergeTreeEngine: base,
		columns:         e.columns,
	}
}
