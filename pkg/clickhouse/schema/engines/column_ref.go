package engines

import (
	"github.com/transferia/chengine/pkg/clickhouse/schema"
)

type ColumnRole string

const (
	RolePrimaryKey ColumnRole = "primary key"
	RoleOrderBy    ColumnRole = "order by"
	RoleVersion    ColumnRole = "version"
	RoleIsDeleted  ColumnRole = "is_deleted"
	RoleSum        ColumnRole = "sum"
)

// ColumnRef is a column of the table engine is attached to. It holds the name only,
// the column itself is looked up on Attach.
type ColumnRef struct {
	name string
	role ColumnRole
}

func newColumnRef(name string, role ColumnRole) *ColumnRef {
	return &ColumnRef{
		name: schema.UnquoteIdent(name),
		role: role,
	}
}

func (r *ColumnRef) Name() string {
	return r.name
}

func (r *ColumnRef) Role() ColumnRole {
	return r.role
}

func (r *ColumnRef) resolve(table *schema.Table) (*schema.Column, error) {
	col := table.Column(r.name)
	if col == nil {
		return nil, &UnresolvedColumnError{
			Table:  table.String(),
			Column: r.name,
			Role:   r.role,
		}
	}
	return col, nil
}

// Key is an element of sorting or primary key: a column or an arbitrary expression.
type Key struct {
	Expr   string
	Column *schema.Column
}

func (k Key) String() string {
	if k.Column != nil {
		return renderIdent(k.Column.Name)
	}
	return k.Expr
}

func resolveKeys(table *schema.Table, exprs []string, role ColumnRole) ([]Key, error) {
	if len(exprs) == 0 {
		return nil, nil
	}
	result := make([]Key, 0, len(exprs))
	for _, expr := range exprs {
		if !schema.IsIdent(expr) {
			result = append(result, Key{Expr: expr, Column: nil})
			continue
		}
		col, err := newColumnRef(expr, role).resolve(table)
		if err != nil {
			return nil, err
		}
		result = append(result, Key{Expr: expr, Column: col})
	}
	return result, nil
}
