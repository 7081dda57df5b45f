package engines

import (
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ReplacingMergeTreeEngine keeps the row with the highest version per sorting key during merges,
// rows with non-zero is_deleted column are removed.
type ReplacingMergeTreeEngine struct {
	MergeTreeEngine
	version   *ColumnRef
	isDeleted *ColumnRef
}

var _ Engine = (*ReplacingMergeTreeEngine)(nil)

// NewReplacingMergeTree builds ReplacingMergeTree or ReplicatedReplacingMergeTree.
// args.IsDeleted is ignored unless args.Version is set: ClickHouse accepts is_deleted column only after version one.
func NewReplacingMergeTree(kind Kind, args Args) (*ReplacingMergeTreeEngine, error) {
	if !IsSupported(kind) {
		return nil, &UnsupportedEngineError{Kind: string(kind)}
	}
	if !kind.IsVersioned() {
		return nil, xerrors.Errorf("%s is not a ReplacingMergeTree engine", kind)
	}
	base, err := newBase(kind, args)
	if err != nil {
		return nil, err
	}

	result := &ReplacingMergeTreeEngine{
		MergeTreeEngine: base,
		version:         nil,
		isDeleted:       nil,
	}
	if args.Version != "" {
		result.version = newColumnRef(args.Version, RoleVersion)
		if args.IsDeleted != "" {
			result.isDeleted = newColumnRef(args.IsDeleted, RoleIsDeleted)
		}
	}
	return result, nil
}

// VersionColumn returns empty string if engine has no version column.
func (e *ReplacingMergeTreeEngine) VersionColumn() string {
	if e.version == nil {
		return ""
	}
	return e.version.Name()
}

func (e *ReplacingMergeTreeEngine) IsDeletedColumn() string {
	if e.isDeleted == nil {
		return ""
	}
	return e.isDeleted.Name()
}

func (e *ReplacingMergeTreeEngine) Attach(table *schema.Table) (*AttachedEngine, error) {
	attached, err := e.MergeTreeEngine.Attach(table)
	if err != nil {
		return nil, err
	}
	for _, ref := range []*ColumnRef{e.version, e.isDeleted} {
		if ref == nil {
			break
		}
		col, err := ref.resolve(table)
		if err != nil {
			return nil, xerrors.Errorf("unable to attach %s: %w", e.kind, err)
		}
		attached.parameters = append(attached.parameters, col)
	}
	return attached, nil
}

func (e *ReplacingMergeTreeEngine) withBase(base MergeTreeEngine) Engine {
	return &ReplacingMergeTreeEngine{
		MergeTreeEngine: base,
		version:         e.version,
		isDeleted:       e.isDeleted,
	}
}
