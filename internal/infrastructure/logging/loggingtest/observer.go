// Package loggingtest provides loggers for asserting on log output in tests.
package loggingtest

import (
	"github.com/GriffinCanCode/faleproxy/internal/infrastructure/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObserved returns a logger that records entries at or above level
func NewObserved(level zapcore.Level) (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &logging.Logger{Logger: zap.New(core)}, logs
}
