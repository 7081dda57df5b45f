package schema

type TableDDL struct {
	table  *Table
	sql    string
	engine string
}

func (t *TableDDL) SQL() string {
	return t.sql
}

func (t *TableDDL) Engine() string {
	return t.engine
}

func (t *TableDDL) Table() *Table {
	return t.table
}

func NewTableDDL(table *Table, sql, engine string) *TableDDL {
	return &TableDDL{
		table:  table,
		sql:    sql,
		engine: engine,
	}
}
