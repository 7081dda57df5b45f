package engines

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/chengine/pkg/clickhouse/schema"
)

func TestAttachedEngineSQL(t *testing.T) {
	t.Run("engine call", func(t *testing.T) {
		for kind, expected := range map[string]string{
			"MergeTree":                      "MergeTree",
			"AggregatingMergeTree":           "AggregatingMergeTree",
			"SummingMergeTree":               "SummingMergeTree",
			"ReplacingMergeTree":             "ReplacingMergeTree(ReportDate, _is_deleted)",
			"ReplicatedMergeTree":            "ReplicatedMergeTree('/clickhouse/tables/{shard}/events', '{replica}')",
			"ReplicatedReplacingMergeTree":   "ReplicatedReplacingMergeTree('/clickhouse/tables/{shard}/events', '{replica}')",
			"ReplicatedSummingMergeTree":     "ReplicatedSummingMergeTree('/clickhouse/tables/{shard}/events', '{replica}')",
			"ReplicatedAggregatingMergeTree": "ReplicatedAggregatingMergeTree('/clickhouse/tables/{shard}/events', '{replica}')",
		} {
			engine, err := Create(kind, []string{"id"}, "events", replicationConfig)
			require.NoError(t, err)
			attached, err := engine.Attach(testTable())
			require.NoError(t, err)
			require.Equal(t, expected, attached.String(), kind)
			require.Equal(t, expected+" ORDER BY id", attached.SQL(), kind)
		}
	})

	t.Run("ordering", func(t *testing.T) {
		for _, tc := range []struct {
			name     string
			params   MergeTreeParams
			expected string
		}{
			{name: "full tuple", params: MergeTreeParams{}, expected: "MergeTree ORDER BY tuple()"},
			{name: "single key", params: MergeTreeParams{PrimaryKey: []string{"id"}}, expected: "MergeTree ORDER BY id"},
			{name: "compound key", params: MergeTreeParams{PrimaryKey: []string{"id", "ts"}}, expected: "MergeTree ORDER BY (id, ts)"},
			{name: "order by only", params: MergeTreeParams{OrderBy: []string{"ts", "id"}}, expected: "MergeTree ORDER BY (ts, id)"},
			{
				name:     "primary key is prefix of order by",
				params:   MergeTreeParams{PrimaryKey: []string{"id"}, OrderBy: []string{"id", "ts"}},
				expected: "MergeTree PRIMARY KEY id ORDER BY (id, ts)",
			},
			{
				name:     "expressions",
				params:   MergeTreeParams{PrimaryKey: []string{"toStartOfHour(ts)", "`id`"}},
				expected: "MergeTree ORDER BY (toStartOfHour(ts), id)",
			},
		} {
			t.Run(tc.name, func(t *testing.T) {
				engine, err := NewMergeTree(MergeTree, Args{MergeTreeParams: tc.params})
				require.NoError(t, err)
				attached, err := engine.Attach(testTable())
				require.NoError(t, err)
				require.Equal(t, tc.expected, attached.SQL())
			})
		}
	})

	t.Run("full tuple with keys", func(t *testing.T) {
		_, err := NewMergeTree(MergeTree, Args{MergeTreeParams: MergeTreeParams{PrimaryKey: []string{"id"}, FullTupleOrder: true}})
		require.Error(t, err)
	})

	t.Run("quoted identifiers", func(t *testing.T) {
		table := schema.NewTable("db", "t",
			&schema.Column{Name: "my id", Type: "UInt64"},
			&schema.Column{Name: "version", Type: "UInt64"},
		)
		engine, err := NewReplacingMergeTree(ReplacingMergeTree, Args{
			MergeTreeParams: MergeTreeParams{PrimaryKey: []string{"`my id`"}},
			Version:         "version",
		})
		require.NoError(t, err)
		attached, err := engine.Attach(table)
		require.NoError(t, err)
		require.Equal(t, "ReplacingMergeTree(version) ORDER BY `my id`", attached.SQL())
	})

	t.Run("summing columns", func(t *testing.T) {
		engine, err := NewSummingMergeTree(SummingMergeTree, Args{
			MergeTreeParams: MergeTreeParams{PrimaryKey: []string{"id"}},
			SumColumns:      []string{"hits", "ReportDate"},
		})
		require.NoError(t, err)
		attached, err := engine.Attach(testTable())
		require.NoError(t, err)
		require.Equal(t, "SummingMergeTree((hits, ReportDate)) ORDER BY id", attached.SQL())
		require.Equal(t, []string{"hits", "ReportDate"}, attached.ParameterNames())
	})

	t.Run("attached engine is a snapshot", func(t *testing.T) {
		engine, err := NewMergeTree(MergeTree, Args{MergeTreeParams: MergeTreeParams{PrimaryKey: []string{"id"}}})
		require.NoError(t, err)
		attached, err := engine.Attach(testTable())
		require.NoError(t, err)

		params := attached.Params()
		params.PrimaryKey[0] = "ts"
		keys := attached.PrimaryKey()
		keys[0] = Key{Expr: "ts", Column: nil}
		require.Equal(t, "MergeTree ORDER BY id", attached.SQL())
	})
}

func TestCreateTableDDL(t *testing.T) {
	engine, err := Create("ReplicatedReplacingMergeTree", []string{"id"}, "events", replicationConfig)
	require.NoError(t, err)
	table := schema.NewTable("db", "events",
		&schema.Column{Name: "id", Type: "UInt64"},
		&schema.Column{Name: "payload", Type: "String"},
	)
	attached, err := engine.Attach(table)
	require.NoError(t, err)

	ddl := attached.CreateTableDDL(DDLOptions{IfNotExists: false, Cluster: ""})
	require.Equal(t,
		"CREATE TABLE `db`.`events` (`id` UInt64, `payload` String) "+
			"ENGINE = ReplicatedReplacingMergeTree('/clickhouse/tables/{shard}/events', '{replica}') ORDER BY id",
		ddl.SQL(),
	)
	require.Equal(t, "ReplicatedReplacingMergeTree('/clickhouse/tables/{shard}/events', '{replica}') ORDER BY id", ddl.Engine())
	require.Same(t, table, ddl.Table())

	ddl = attached.CreateTableDDL(DDLOptions{IfNotExists: true, Cluster: "main"})
	require.Equal(t,
		"CREATE TABLE IF NOT EXISTS `db`.`events` ON CLUSTER `main` (`id` UInt64, `payload` String) "+
			"ENGINE = ReplicatedReplacingMergeTree('/clickhouse/tables/{shard}/events', '{replica}') ORDER BY id",
		ddl.SQL(),
	)
}
