package codes

import "github.com/transferia/chengine/pkg/errors/coded"

var (
	// generic
	Dial          = coded.Register("generic", "dial_error")
	InvalidConfig = coded.Register("generic", "invalid_config")

	// engines
	EngineUnsupported       = coded.Register("ch", "engine", "unsupported")
	EngineMissingConfig     = coded.Register("ch", "engine", "missing_config")
	EngineUnresolvedColumn  = coded.Register("ch", "engine", "unresolved_column")
	EngineInvalidTablePath  = coded.Register("ch", "engine", "invalid_table_path")
	EngineInvalidDefinition = coded.Register("ch", "engine", "invalid_definition")

	// catalog
	UnknownTable = coded.Register("ch", "unknown_table")
	DDLFailed    = coded.Register("ch", "ddl_failed")
)

func init() {
	coded.RegisterShortDescription(EngineUnsupported, "Requested table engine is not one of the supported MergeTree family engines")
	coded.RegisterShortDescription(EngineMissingConfig, "Replicated engine requires table_path and replica_name")
	coded.RegisterShortDescription(EngineUnresolvedColumn, "Engine references a column which does not exist in the table")
	coded.RegisterShortDescription(EngineInvalidTablePath, "Replication table path template cannot be substituted")
	coded.RegisterShortDescription(EngineInvalidDefinition, "Engine definition cannot be parsed")
}
