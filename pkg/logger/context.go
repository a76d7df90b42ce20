package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	searchIDKey  contextKey = "search_id"
	loggerKey    contextKey = "logger"
)

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request ID carried by the context, if any
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithSearchID adds a search correlation ID to context
func WithSearchID(ctx context.Context, searchID string) context.Context {
	return context.WithValue(ctx, searchIDKey, searchID)
}

// FromContext extracts logger from context with all accumulated fields
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}

	l := Logger
	if l == nil {
		// Fallback to a basic logger if not initialized
		l, _ = zap.NewProduction()
	}

	var fields []zap.Field

	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	if searchID, ok := ctx.Value(searchIDKey).(string); ok && searchID != "" {
		fields = append(fields, zap.String("search_id", searchID))
	}

	if len(fields) > 0 {
		l = l.With(fields...)
	}

	return l
}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithProduct creates a logger with product-related fields
func WithProduct(logger *zap.Logger, productID uint) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.Uint("product_id", productID))
}

// WithBranch creates a logger with branch-related fields
func WithBranch(logger *zap.Logger, branchID uint) *zap.Logger {
	if logger == nil {
		logger = Logger
	}
	return logger.With(zap.Uint("branch_id", branchID))
}

// ErrorField returns a zap field for errors
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// DurationField returns a zap field for duration in milliseconds
func DurationField(durationMs int64) zap.Field {
	return zap.Int64("duration_ms", durationMs)
}

// SetLogLevel dynamically changes the log level from a string name
func SetLogLevel(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return err
	}

	SetLevel(zapLevel)
	return nil
}

// GetLogLevel returns the current log level
func GetLogLevel() string {
	return GetLevel().String()
}
