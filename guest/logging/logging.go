// Package logging provides the module logger. WASI hosts forward the guest's
// stderr, so log lines are written there as JSON.
package logging

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(New(zapcore.InfoLevel, zapcore.Lock(os.Stderr)))
}

// New builds a JSON logger writing to w at the given level.
func New(level zapcore.Level, w zapcore.WriteSyncer) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, level)
	return zap.New(core).Named("msgwasm")
}

// Configure replaces the module logger with a stderr logger at level.
func Configure(level zapcore.Level) {
	logger.Store(New(level, zapcore.Lock(os.Stderr)))
}

// L returns the module logger.
func L() *zap.Logger {
	return logger.Load()
}

// SetLogger replaces the module logger and returns a function restoring the
// previous one.
func SetLogger(l *zap.Logger) (restore func()) {
	prev := logger.Swap(l)
	return func() { logger.Store(prev) }
}
