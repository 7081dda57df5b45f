package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	table := NewTable("analytics", "events",
		&Column{Name: "id", Type: "UInt64"},
		&Column{Name: "ReportDate", Type: "Date"},
	)

	t.Run("column lookup", func(t *testing.T) {
		require.Equal(t, "Date", table.Column("ReportDate").Type)
		require.Nil(t, table.Column("reportdate"))
		require.Equal(t, []string{"id", "ReportDate"}, table.ColumnNames())
	})

	t.Run("names", func(t *testing.T) {
		require.Equal(t, "`analytics`.`events`", table.FQTN())
		require.Equal(t, "analytics.events", table.String())
		require.Equal(t, "`events`", NewTable("", "events").FQTN())
		require.Equal(t, "`id` UInt64", table.Columns[0].String())
	})
}

func TestIdentifiers(t *testing.T) {
	t.Run("UnquoteIdent", func(t *testing.T) {
		require.Equal(t, "ver", UnquoteIdent("`ver`"))
		require.Equal(t, "ver", UnquoteIdent(`"ver"`))
		require.Equal(t, "ver", UnquoteIdent(" ver "))
		require.Equal(t, "a`b", UnquoteIdent("`a\\`b`"))
		require.Equal(t, "`", UnquoteIdent("`"))
	})

	t.Run("IsIdent", func(t *testing.T) {
		require.True(t, IsIdent("_is_deleted"))
		require.True(t, IsIdent("ReportDate"))
		require.True(t, IsIdent("`weird name`"))
		require.False(t, IsIdent("toDate(ts)"))
		require.False(t, IsIdent("1abc"))
		require.False(t, IsIdent(""))
	})

	t.Run("QuoteIdent", func(t *testing.T) {
		require.Equal(t, "`a\\`b`", QuoteIdent("a`b"))
	})
}
