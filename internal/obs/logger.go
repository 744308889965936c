// Package obs holds the single shared diagnostic logger used by sem and
// chanfd. It is deliberately tiny: the hot send/recv path never touches
// it, it only backs the two diagnostic seams the core spec allows —
// construction-error context and the fatal short-read/short-write abort.
package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger zapLoggerBox

type zapLoggerBox struct {
	l *zap.Logger
}

func init() {
	logger.l = zap.NewNop()
}

// Set installs l as the package logger. A nil l installs a no-op logger.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.l = l
}

// L returns the current logger.
func L() *zap.Logger {
	return logger.l
}

// Fatal logs msg at fatal level and then aborts the process. It is used
// exclusively for violations of semaphore-descriptor invariants: a short
// read or short write can only happen if the descriptor has been
// tampered with, and the core's contract (spec §7) is to abort rather
// than surface a recoverable error.
func Fatal(msg string, fields ...zapcore.Field) {
	logger.l.Fatal(msg, fields...)
	panic(msg) // unreachable unless the logger's Fatal hook was overridden
}
