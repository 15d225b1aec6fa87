package contracts

import "go.uber.org/zap"

// Logger provides leveled, structured logging for the SDK. The zap field
// constructors (zap.String, zap.Int, ...) are used directly for fields.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}
