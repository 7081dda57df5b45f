package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.ytsaurus.tech/library/go/core/log"
	corezap "go.ytsaurus.tech/library/go/core/log/zap"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Log is the process-wide logger, replaced by the CLI once flags are parsed.
var Log log.Logger = &corezap.Logger{L: zap.NewNop()}

func DefaultLoggerConfig(level zapcore.Level) zap.Config {
	return zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:     "msg",
			LevelKey:       "level",
			TimeKey:        "ts",
			NameKey:        "logger",
			CallerKey:      "caller",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
}

// ParseLevel accepts level names of --log-level flag.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "panic":
		return zapcore.PanicLevel, nil
	case "fatal":
		return zapcore.FatalLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	default:
		return zapcore.InfoLevel, xerrors.Errorf("unsupported value \"%s\" for --log-level", level)
	}
}

// NewConfig builds zap config by --log-config and --log-level values: "console", "json" or "minimal".
func NewConfig(format, level string) (zap.Config, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zap.Config{}, err
	}

	cfg := DefaultLoggerConfig(lvl)
	switch strings.ToLower(format) {
	case "console":
	case "json":
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
	case "minimal":
		cfg.EncoderConfig = zapcore.EncoderConfig{
			MessageKey: "message",
			LevelKey:   "level",
			// Disable the rest of the fields
			TimeKey:        "",
			NameKey:        "",
			CallerKey:      "",
			FunctionKey:    "",
			StacktraceKey:  "",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeName:     nil,
			EncodeDuration: nil,
		}
	default:
		return zap.Config{}, xerrors.Errorf("unsupported value \"%s\" for --log-config", format)
	}
	cfg.Level.SetLevel(lvl)
	return cfg, nil
}
