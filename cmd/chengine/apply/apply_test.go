package apply

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/transferia/chengine/internal/logger"
	"github.com/transferia/chengine/pkg/clickhouse/dao"
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
	"github.com/transferia/chengine/pkg/errors/codes"
	"github.com/transferia/chengine/pkg/stats"
)

const tableExistsQuery = "SELECT 1 FROM `system`.`tables` WHERE `database` = ? and `name` = ?"

func buildDDLs(t *testing.T) []*schema.TableDDL {
	var result []*schema.TableDDL
	for _, name := range []string{"users", "orders"} {
		engine, err := engines.Create("MergeTree", []string{"id"}, name, nil)
		require.NoError(t, err)
		attached, err := engine.Attach(schema.NewTable("db", name, &schema.Column{Name: "id", Type: "UInt64"}))
		require.NoError(t, err)
		result = append(result, attached.CreateTableDDL(engines.DDLOptions{IfNotExists: true, Cluster: ""}))
	}
	return result
}

func newDAO(t *testing.T) (*dao.DDLDAO, sqlmock.Sqlmock, *stats.EngineStats) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	engineStats := stats.NewEngineStats(prometheus.NewRegistry())
	return dao.NewDDLDAO(db, logger.Log, engineStats), mock, engineStats
}

func TestApply(t *testing.T) {
	t.Run("all tables", func(t *testing.T) {
		ddlDAO, mock, engineStats := newDAO(t)
		ddls := buildDDLs(t)
		for _, ddl := range ddls {
			mock.ExpectExec(ddl.SQL()).WillReturnResult(sqlmock.NewResult(0, 0))
		}
		require.NoError(t, Apply(context.Background(), ddlDAO, ddls, false))
		require.NoError(t, mock.ExpectationsWereMet())
		require.Equal(t, 2.0, testutil.ToFloat64(engineStats.DDL))
	})

	t.Run("skip existing", func(t *testing.T) {
		ddlDAO, mock, engineStats := newDAO(t)
		ddls := buildDDLs(t)
		mock.ExpectQuery(tableExistsQuery).WithArgs("db", "users").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).FromCSVString("1\n"))
		mock.ExpectQuery(tableExistsQuery).WithArgs("db", "orders").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))
		mock.ExpectExec(ddls[1].SQL()).WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, Apply(context.Background(), ddlDAO, ddls, true))
		require.NoError(t, mock.ExpectationsWereMet())
		require.Equal(t, 1.0, testutil.ToFloat64(engineStats.DDL))
	})

	t.Run("stops on failure", func(t *testing.T) {
		ddlDAO, mock, engineStats := newDAO(t)
		ddls := buildDDLs(t)
		mock.ExpectExec(ddls[0].SQL()).WillReturnError(sql.ErrConnDone)
		err := Apply(context.Background(), ddlDAO, ddls, false)
		require.ErrorIs(t, err, sql.ErrConnDone)
		require.True(t, codes.DDLFailed.Contains(err))
		require.NoError(t, mock.ExpectationsWereMet())
		require.Equal(t, 1.0, testutil.ToFloat64(engineStats.Errors.WithLabelValues(stats.OperationDDL, codes.DDLFailed.ID())))
	})
}
