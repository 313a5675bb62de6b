package utils

import (
	"context"

	"go.uber.org/zap"

	"supplies-backoffice/pkg/contextkeys"
)

// RequestIDFromContext - пусто, если запрос пришел не через middleware.RequestID().
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}

// LoggerWithRequest добавляет к логгеру request_id и, если есть, субъект админского токена.
func LoggerWithRequest(ctx context.Context, logger *zap.Logger) *zap.Logger {
	fields := make([]zap.Field, 0, 2)
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if subject, ok := ctx.Value(contextkeys.AdminSubjectKey).(string); ok && subject != "" {
		fields = append(fields, zap.String("admin", subject))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
