package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/transferia/chengine/pkg/errors/codes"
	"github.com/transferia/chengine/pkg/stats"
)

const request = `
defaults:
  table_path: /clickhouse/tables/{shard}/${table_name}
  replica_name: "{replica}"
tables:
  - database: db
    name: users
    engine: ReplicatedAggregatingMergeTree
    primary_keys: [id]
    columns:
      - {name: id, type: UInt64}
  - database: db
    name: hits
    engine: SummingMergeTree
    primary_keys: [url]
    columns:
      - {name: url, type: String}
      - {name: hits, type: UInt64}
`

func writeRequest(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRenderCommand(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		engineStats := stats.NewEngineStats(prometheus.NewRegistry())
		var out bytes.Buffer
		cmd := RenderCommand(engineStats)
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--config", writeRequest(t, request), "--cluster", "main"})
		require.NoError(t, cmd.Execute())
		require.Equal(t,
			"CREATE TABLE IF NOT EXISTS `db`.`users` ON CLUSTER `main` (`id` UInt64) "+
				"ENGINE = ReplicatedAggregatingMergeTree('/clickhouse/tables/{shard}/users', '{replica}') ORDER BY id;\n"+
				"CREATE TABLE IF NOT EXISTS `db`.`hits` ON CLUSTER `main` (`url` String, `hits` UInt64) "+
				"ENGINE = SummingMergeTree ORDER BY url;\n",
			out.String(),
		)
		require.Equal(t, 1.0, testutil.ToFloat64(engineStats.Built.WithLabelValues("SummingMergeTree")))
	})

	t.Run("unsupported engine", func(t *testing.T) {
		engineStats := stats.NewEngineStats(prometheus.NewRegistry())
		cmd := RenderCommand(engineStats)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--config", writeRequest(t, "tables: [{name: t, engine: Log, columns: [{name: a, type: UInt8}]}]")})
		err := cmd.Execute()
		require.Error(t, err)
		require.True(t, codes.EngineUnsupported.Contains(err))
		require.Equal(t, 1.0, testutil.ToFloat64(engineStats.Errors.WithLabelValues(stats.OperationBuild, codes.EngineUnsupported.ID())))
	})
}
