package schema

import (
	"fmt"
	"strings"
)

type Column struct {
	Name string
	Type string
}

func (c *Column) String() string {
	return fmt.Sprintf("%s %s", QuoteIdent(c.Name), c.Type)
}

// Table is the definition an engine is attached to.
type Table struct {
	Database string
	Name     string
	Columns  []*Column
}

func NewTable(database, name string, columns ...*Column) *Table {
	return &Table{
		Database: database,
		Name:     name,
		Columns:  columns,
	}
}

// Column returns nil when the table has no column with such name.
func (t *Table) Column(name string) *Column {
	for _, col := range t.Columns {
		if col.Name == name {
			return col
		}
	}
	return nil
}

func (t *Table) ColumnNames() []string {
	result := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		result = append(result, col.Name)
	}
	return result
}

func (t *Table) FQTN() string {
	if t.Database == "" {
		return QuoteIdent(t.Name)
	}
	return fmt.Sprintf("%s.%s", QuoteIdent(t.Database), QuoteIdent(t.Name))
}

func (t *Table) String() string {
	if t.Database == "" {
		return t.Name
	}
	return t.Database + "." + t.Name
}

func QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "\\`") + "`"
}

// UnquoteIdent strips backticks or double quotes around identifier, if any.
func UnquoteIdent(name string) string {
	name = strings.TrimSpace(name)
	if len(name) >= 2 {
		first, last := name[0], name[len(name)-1]
		if (first == '`' && last == '`') || (first == '"' && last == '"') {
			inner := name[1 : len(name)-1]
			inner = strings.ReplaceAll(inner, "\\"+string(first), string(first))
			return inner
		}
	}
	return name
}

// IsIdent reports whether expr is a single, possibly quoted, identifier.
func IsIdent(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return false
	}
	if len(expr) >= 2 && ((expr[0] == '`' && expr[len(expr)-1] == '`') || (expr[0] == '"' && expr[len(expr)-1] == '"')) {
		return true
	}
	for i, r := range expr {
		isLetter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !(isDigit && i > 0) {
			return false
		}
	}
	return true
}
