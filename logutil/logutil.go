// Package logutil builds the zap loggers used by the benchmark binaries.
//
// Loggers always write to stderr: stdout carries the report lines that the
// execution harness parses and must contain nothing else.
package logutil

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger at the given level ("debug", "info", "warn",
// "error") writing to w. A nil w means stderr.
func New(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logutil: %w", err)
	}
	if w == nil {
		w = os.Stderr
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)
	return zap.New(core, zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

// Must is New for levels known to be valid; an invalid level falls back to
// info.
func Must(level string) *zap.Logger {
	l, err := New(level, nil)
	if err != nil {
		l, _ = New("info", nil)
	}
	return l
}

// Fatal is the one abort path: it logs msg at fatal level, which flushes the
// logger and exits the process with status 1. It may be called from any
// goroutine.
func Fatal(l *zap.Logger, msg string, fields ...zap.Field) {
	l.WithOptions(zap.AddCallerSkip(1)).Fatal(msg, fields...)
}
