package engines

import (
	"strings"
)

// Kind is a table engine name of MergeTree family.
type Kind string

const (
	MergeTree            = Kind("MergeTree")
	ReplacingMergeTree   = Kind("ReplacingMergeTree")
	SummingMergeTree     = Kind("SummingMergeTree")
	AggregatingMergeTree = Kind("AggregatingMergeTree")

	ReplicatedMergeTree            = Kind("ReplicatedMergeTree")
	ReplicatedReplacingMergeTree   = Kind("ReplicatedReplacingMergeTree")
	ReplicatedSummingMergeTree     = Kind("ReplicatedSummingMergeTree")
	ReplicatedAggregatingMergeTree = Kind("ReplicatedAggregatingMergeTree")
)

const (
	replicatedPrefix = "Replicated"
	// SharedMergeTree family is available on ClickHouse Cloud exclusively, it is read as Replicated*
	sharedPrefix = "Shared"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsReplicated() bool {
	switch k {
	case ReplicatedMergeTree, ReplicatedReplacingMergeTree, ReplicatedSummingMergeTree, ReplicatedAggregatingMergeTree:
		return true
	default:
		return false
	}
}

// IsVersioned reports whether engine accepts version and is_deleted columns.
func (k Kind) IsVersioned() bool {
	return k.Base() == ReplacingMergeTree
}

// Base returns not replicated version of kind, for example 'ReplicatedMergeTree' -> 'MergeTree'.
func (k Kind) Base() Kind {
	if k.IsReplicated() {
		return Kind(strings.TrimPrefix(string(k), replicatedPrefix))
	}
	return k
}

// Replicated returns replicated version of kind, for example 'MergeTree' -> 'ReplicatedMergeTree'.
func (k Kind) Replicated() (Kind, bool) {
	if k.IsReplicated() {
		return k, true
	}
	replicated := Kind(replicatedPrefix + string(k))
	if replicated.IsReplicated() {
		return replicated, true
	}
	return "", false
}

func fromShared(name string) (string, bool) {
	if !strings.HasPrefix(name, sharedPrefix) {
		return name, false
	}
	replicated := Kind(replicatedPrefix + strings.TrimPrefix(name, sharedPrefix))
	if replicated.IsReplicated() {
		return string(replicated), true
	}
	return name, false
}
