package errors

import (
	"fmt"

	"github.com/transferia/chengine/pkg/errors/coded"
	"go.uber.org/multierr"
	"go.ytsaurus.tech/library/go/core/log"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

const (
	KeyCommand = "labels.command"
	Code       = "labels.code"

	unspecifiedCode = "unspecified"
)

// LogFatalError logs every error combined in err, with its code when it has one and the short stack trace otherwise.
func LogFatalError(lgr log.Logger, err error, command string) {
	defer func() {
		if r := recover(); r != nil {
			lgr.Error(
				"panic during error logging",
				log.String("panic", fmt.Sprintf("%v", r)),
				log.String(KeyCommand, command),
				log.String(Code, unspecifiedCode),
			)
		}
	}()

	for _, err := range multierr.Errors(err) {
		logFatalError(lgr, err, command)
	}
}

func logFatalError(lgr log.Logger, err error, command string) {
	code := unspecifiedCode
	msg := ExtractShortStackTrace(err)
	var codeErr coded.CodedError = nil
	if xerrors.As(err, &codeErr) {
		code = codeErr.Code().ID()
		msg = code
	}
	if msg == "" {
		msg = "command failed"
	}
	lgr.Error(
		msg,
		log.Error(err),
		log.String(KeyCommand, command),
		log.String(Code, code),
	)
}
