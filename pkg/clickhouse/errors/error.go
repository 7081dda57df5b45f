package errors

import (
	"github.com/ClickHouse/clickhouse-go/v2"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// full list of error codes here - https://github.com/ClickHouse/ClickHouse/blob/master/src/Common/ErrorCodes.cpp
const (
	CodeTableAlreadyExists int32 = 57
	CodeUnknownTable       int32 = 60
	CodeUnknownDatabase    int32 = 81
)

func IsClickhouseError(err error) bool {
	var exception *clickhouse.Exception
	return xerrors.As(err, &exception)
}

func HasCode(err error, code int32) bool {
	exception := new(clickhouse.Exception)
	if !xerrors.As(err, &exception) {
		return false
	}
	return exception.Code == code
}

func IsUnknownTable(err error) bool {
	return HasCode(err, CodeUnknownTable) || HasCode(err, CodeUnknownDatabase)
}

func IsTableAlreadyExists(err error) bool {
	return HasCode(err, CodeTableAlreadyExists)
}
