package engines

import (
	"fmt"
	"strings"

	"github.com/transferia/chengine/pkg/clickhouse/schema"
)

type DDLOptions struct {
	IfNotExists bool
	// Cluster adds ON CLUSTER clause when not empty
	Cluster string
}

// CreateTableDDL renders CREATE TABLE query of the table engine is attached to.
func (e *AttachedEngine) CreateTableDDL(opts DDLOptions) *schema.TableDDL {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if opts.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(e.table.FQTN())
	if opts.Cluster != "" {
		b.WriteString(" ON CLUSTER ")
		b.WriteString(schema.QuoteIdent(opts.Cluster))
	}

	columns := make([]string, 0, len(e.table.Columns))
	for _, col := range e.table.Columns {
		columns = append(columns, col.String())
	}
	engine := e.SQL()
	_, _ = fmt.Fprintf(&b, " (%s) ENGINE = %s", strings.Join(columns, ", "), engine)

	return schema.NewTableDDL(e.table, b.String(), engine)
}
