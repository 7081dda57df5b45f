package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/transferia/chengine/pkg/errors/coded"
	"github.com/transferia/chengine/pkg/errors/codes"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	corezap "go.ytsaurus.tech/library/go/core/log/zap"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestLogFatalError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lgr := &corezap.Logger{L: zap.New(core)}

	err := multierr.Combine(
		coded.Errorf(codes.EngineUnsupported, "engine Log is not supported"),
		xerrors.New("boom"),
	)
	LogFatalError(lgr, err, "render")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	require.Equal(t, codes.EngineUnsupported.ID(), entries[0].Message)
	require.Equal(t, codes.EngineUnsupported.ID(), entries[0].ContextMap()[Code])
	require.Equal(t, "render", entries[0].ContextMap()[KeyCommand])

	require.Equal(t, unspecifiedCode, entries[1].ContextMap()[Code])
	require.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}
