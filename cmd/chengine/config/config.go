package config

import (
	"os"

	"github.com/transferia/chengine/pkg/clickhouse/conn"
	"github.com/transferia/chengine/pkg/clickhouse/schema"
	"github.com/transferia/chengine/pkg/clickhouse/schema/engines"
	"go.ytsaurus.tech/library/go/core/xerrors"
	"gopkg.in/yaml.v3"
)

type Column struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Table describes table to be created, EngineConfig holds engine options, e.g. table_path and replica_name.
type Table struct {
	Database     string         `yaml:"database"`
	Name         string         `yaml:"name"`
	Engine       string         `yaml:"engine"`
	PrimaryKeys  []string       `yaml:"primary_keys"`
	Columns      []Column       `yaml:"columns"`
	EngineConfig map[string]any `yaml:"engine_config"`
}

type Request struct {
	Connection *conn.ConnParams `yaml:"connection"`
	// Defaults are engine options applied to every table, table own options take precedence
	Defaults map[string]any `yaml:"defaults"`
	Tables   []Table        `yaml:"tables"`
}

func RequestFromYaml(path *string) (*Request, error) {
	data, err := os.ReadFile(*path)
	if err != nil {
		return nil, xerrors.Errorf("unable to read request file %s: %w", *path, err)
	}
	return ParseRequest(data)
}

func ParseRequest(data []byte) (*Request, error) {
	var request Request
	if err := yaml.Unmarshal(data, &request); err != nil {
		return nil, xerrors.Errorf("unable to parse request: %w", err)
	}
	for i, table := range request.Tables {
		if table.Name == "" {
			return nil, xerrors.Errorf("table #%d has no name", i)
		}
		if len(table.Columns) == 0 {
			return nil, xerrors.Errorf("table %s has no columns", table.Name)
		}
	}
	return &request, nil
}

func (t *Table) Schema() *schema.Table {
	columns := make([]*schema.Column, 0, len(t.Columns))
	for _, col := range t.Columns {
		columns = append(columns, &schema.Column{Name: col.Name, Type: col.Type})
	}
	return schema.NewTable(t.Database, t.Name, columns...)
}

// Build creates engine of the table and attaches it to the table columns.
func (r *Request) Build(table Table) (*engines.AttachedEngine, error) {
	var options map[string]any
	if r.Defaults != nil || table.EngineConfig != nil {
		options = make(map[string]any, len(r.Defaults)+len(table.EngineConfig))
		for key, value := range r.Defaults {
			options[key] = value
		}
		for key, value := range table.EngineConfig {
			options[key] = value
		}
	}
	cfg, err := engines.ConfigFromMap(options)
	if err != nil {
		return nil, xerrors.Errorf("invalid engine config of table %s: %w", table.Name, err)
	}

	engine, err := engines.Create(table.Engine, table.PrimaryKeys, table.Name, cfg)
	if err != nil {
		return nil, xerrors.Errorf("unable to build engine of table %s: %w", table.Name, err)
	}
	attached, err := engine.Attach(table.Schema())
	if err != nil {
		return nil, xerrors.Errorf("unable to attach engine to table %s: %w", table.Name, err)
	}
	return attached, nil
}
