package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	dlevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	cfg := zap.Config{
		Level:            dlevel,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		// NOTE: set this false to enable stack trace
		DisableStacktrace: true,
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	logger = l.Sugar()
}

func L() *zap.SugaredLogger {
	if logger == nil {
		panic("Logger is not initialized")
	}
	return logger
}

func Close() {
	// Sync on a terminal stderr reports EINVAL; nothing is lost in that case.
	if err := L().Sync(); err != nil {
		L().Debug(errors.WithMessage(err, "failed to sync logger"))
	}
}

func SetLogLevel(level zapcore.Level) {
	dlevel.SetLevel(level)
}

// SetLogLevelString parses one of debug, info, warn, error, dpanic, panic, fatal.
func SetLogLevelString(level string) error {
	var l zapcore.Level
	if err := l.Set(level); err != nil {
		return errors.Wrapf(err, "log level %q", level)
	}
	SetLogLevel(l)
	return nil
}

func Level() zapcore.Level {
	return dlevel.Level()
}
