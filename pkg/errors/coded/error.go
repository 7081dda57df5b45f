package coded

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

type CodedError interface {
	error
	Code() Code
}

type codedError struct {
	code Code
	err  error
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return xerrors.Unwrap(e.err)
}

func (e *codedError) Code() Code {
	return e.code
}

func Errorf(code Code, format string, args ...any) CodedError {
	return &codedError{
		code: code,
		err:  xerrors.Errorf(format, args...),
	}
}
