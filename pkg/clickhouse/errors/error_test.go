package errors

import (
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/require"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestClickhouseErrors(t *testing.T) {
	unknownTable := xerrors.Errorf("query failed: %w", &clickhouse.Exception{Code: CodeUnknownTable, Name: "UNKNOWN_TABLE", Message: "Table db.t does not exist"})
	exists := &clickhouse.Exception{Code: CodeTableAlreadyExists, Name: "TABLE_ALREADY_EXISTS"}
	plain := xerrors.New("connection refused")

	require.True(t, IsClickhouseError(unknownTable))
	require.True(t, IsClickhouseError(exists))
	require.False(t, IsClickhouseError(plain))

	require.True(t, IsUnknownTable(unknownTable))
	require.False(t, IsUnknownTable(exists))
	require.False(t, IsUnknownTable(plain))

	require.True(t, IsTableAlreadyExists(exists))
	require.False(t, IsTableAlreadyExists(unknownTable))
}
