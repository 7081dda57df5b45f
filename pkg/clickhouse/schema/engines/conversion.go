package engines

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ToNotReplicated trims replication parameters: ReplicatedReplacingMergeTree('/p', 'r', ver) -> ReplacingMergeTree(ver).
// Not replicated engine is returned as is.
func ToNotReplicated(engine Engine) Engine {
	if !engine.Kind().IsReplicated() {
		return engine
	}
	base := engine.base()
	base.kind = base.kind.Base()
	base.replication = nil
	return engine.withBase(base)
}

// ToReplicated makes replicated version of engine, table path and replica name are taken from cfg the same way Create does.
// For already replicated engine they are replaced.
func ToReplicated(engine Engine, cfg *Config, tableName string) (Engine, error) {
	kind, ok := engine.Kind().Replicated()
	if !ok {
		return nil, &UnsupportedEngineError{Kind: "Replicated" + string(engine.Kind())}
	}
	replication, err := replicationFromConfig(cfg, tableName)
	if err != nil {
		return nil, xerrors.Errorf("unable to build %s engine for table %s: %w", kind, tableName, err)
	}
	base := engine.base()
	base.kind = kind
	base.replication = replication
	return engine.withBase(base), nil
}
