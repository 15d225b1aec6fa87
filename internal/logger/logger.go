// Package logger provides zap-backed implementations of contracts.Logger.
package logger

import (
	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// ZapLogger implements contracts.Logger on top of a zap.Logger.
type ZapLogger struct {
	logger *zap.Logger
}

// NewZapLogger creates a production JSON logger.
func NewZapLogger() contracts.Logger {
	l, _ := zap.NewProduction()
	return &ZapLogger{logger: l}
}

// NewDevelopmentLogger creates a human-readable console logger.
func NewDevelopmentLogger() contracts.Logger {
	l, _ := zap.NewDevelopment()
	return &ZapLogger{logger: l}
}

// Wrap adapts an existing zap.Logger to the contracts.Logger interface.
func Wrap(l *zap.Logger) contracts.Logger {
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

// NewNoopLogger returns a logger that discards everything. It is the
// default for library consumers who do not supply their own.
func NewNoopLogger() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop()}
}
