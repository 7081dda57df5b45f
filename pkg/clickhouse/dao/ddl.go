package dao

import (
	"context"
	"database/sql"

	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
	"github.com/transferia/chengine/pkg/stats"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Client is satisfied by *sql.DB.
type Client interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type DDLDAO struct {
	db    Client
	lgr   log.Logger
	stats *stats.EngineStats
}

func (d *DDLDAO) TableExists(ctx context.Context, db, table string) (bool, error) {
	var exists int
	d.lgr.Infof("Checking if table %s.%s exists", db, table)
	err := d.db.QueryRowContext(ctx,
		"SELECT 1 FROM `system`.`tables` WHERE `database` = ? and `name` = ?", db, table).Scan(&exists)
	if err != nil {
		if xerrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, xerrors.Errorf("error checking table exist: %w", err)
	}
	return exists == 1, nil
}

// EngineFull returns engine definition of existing table, as ClickHouse keeps it.
func (d *DDLDAO) EngineFull(ctx context.Context, db, table string) (string, error) {
	var engineFull string
	if err := d.db.QueryRowContext(ctx,
		`SELECT engine_full FROM system.tables WHERE database = ? and name = ?`,
		db, table,
	).Scan(&engineFull); err != nil {
		if xerrors.Is(err, sql.ErrNoRows) {
			return "", coded.Errorf(codes.UnknownTable, "table %s.%s does not exist", db, table)
		}
		return "", xerrors.Errorf("error getting table %s.%s engine: %w", db, table, err)
	}
	return engineFull, nil
}

// LoadTable reads table columns in their definition order.
func (d *DDLDAO) LoadTable(ctx context.Context, db, table string) (*schema.Table, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT name, type FROM system.columns WHERE database = ? and table = ? ORDER BY position`,
		db, table,
	)
	if err != nil {
		return nil, xerrors.Errorf("error loading table %s.%s columns: %w", db, table, err)
	}
	defer rows.Close()

	result := schema.NewTable(db, table)
	for rows.Next() {
		var col schema.Column
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, xerrors.Errorf("error scanning table %s.%s column: %w", db, table, err)
		}
		result.Columns = append(result.Columns, &col)
	}
	if err := rows.Err(); err != nil {
		return nil, xerrors.Errorf("error loading table %s.%s columns: %w", db, table, err)
	}
	if len(result.Columns) == 0 {
		return nil, coded.Errorf(codes.UnknownTable, "table %s.%s does not exist", db, table)
	}
	return result, nil
}

// ReflectEngine restores engine of existing table attached to its columns.
func (d *DDLDAO) ReflectEngine(ctx context.Context, db, table string) (*engines.AttachedEngine, error) {
	engine, err := d.reflectEngine(ctx, db, table)
	if err != nil {
		d.stats.Failed(stats.OperationReflect, err)
		return nil, err
	}
	d.stats.EngineReflected(engine.Kind().String())
	return engine, nil
}

func (d *DDLDAO) reflectEngine(ctx context.Context, db, table string) (*engines.AttachedEngine, error) {
	tableSchema, err := d.LoadTable(ctx, db, table)
	if err != nil {
		return nil, xerrors.Errorf("unable to load table: %w", err)
	}
	engineFull, err := d.EngineFull(ctx, db, table)
	if err != nil {
		return nil, xerrors.Errorf("unable to load engine: %w", err)
	}
	d.lgr.Info("Reflecting table engine", log.String("table", tableSchema.String()), log.String("engine_full", engineFull))

	engine, err := engines.Reflect(tableSchema, engineFull)
	if err != nil {
		return nil, xerrors.Errorf("unable to reflect engine of %s: %w", tableSchema.String(), err)
	}
	return engine, nil
}

func (d *DDLDAO) CreateTable(ctx context.Context, ddl *schema.TableDDL) error {
	d.lgr.Infof("Creating table %s with engine %s", ddl.Table().String(), ddl.Engine())
	if _, err := d.db.ExecContext(ctx, ddl.SQL()); err != nil {
		d.lgr.Error("Unable to create table", log.String("table", ddl.Table().String()), log.Error(err))
		wrapped := coded.Errorf(codes.DDLFailed, "unable to create table %s: %w", ddl.Table().String(), err)
		d.stats.Failed(stats.OperationDDL, wrapped)
		return wrapped
	}
	d.stats.DDLExecuted()
	return nil
}

func NewDDLDAO(client Client, lgr log.Logger, engineStats *stats.EngineStats) *DDLDAO {
	if engineStats == nil {
		engineStats = stats.NewEngineStats(nil)
	}
	return &DDLDAO{db: client, lgr: lgr, stats: engineStats}
}
