package middleware

import (
	"bank-ledger/internal/infrastructure/monitoring"
	"context"
	"log/slog"
	"time"
)

func Logging(logger *slog.Logger) Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) (err error) {
			t1 := time.Now()
			logger.DebugContext(ctx, "Starting operation", slog.String("operation", name))
			defer func() {
				attrs := []any{
					slog.String("operation", name),
					slog.String("outcome", outcome(err)),
					slog.Duration("duration", time.Since(t1)),
				}
				if err != nil && outcome(err) != monitoring.OutcomeRejected {
					logger.ErrorContext(ctx, "Operation failed", append(attrs, slog.Any("error", err))...)
					return
				}
				logger.InfoContext(ctx, "Operation completed", attrs...)
			}()
			return next(ctx)
		}
	}
}
