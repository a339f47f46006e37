package middleware

import (
	"bank-ledger/internal/infrastructure/monitoring"
	"context"
	"time"
)

func Metrics() Interceptor {
	return func(name string, next Operation) Operation {
		return func(ctx context.Context) (err error) {
			start := time.Now()
			defer func() {
				monitoring.RecordOperation(name, outcome(err), time.Since(start))
			}()
			return next(ctx)
		}
	}
}
