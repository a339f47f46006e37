// Package middleware wraps ledger operations with cross-cutting behaviour:
// call logging, commit/rollback, metrics and employee authorization.
package middleware

import (
	"bank-ledger/internal/infrastructure/monitoring"
	"context"
	"errors"
)

// ErrRejected is returned inside a chain when an operation completed without
// applying anything, e.g. a withdrawal larger than the balance.
var ErrRejected = errors.New("operation rejected")

type Operation func(ctx context.Context) error

type Interceptor func(name string, next Operation) Operation

// Chain composes interceptors so that the first one is the outermost.
func Chain(interceptors ...Interceptor) Interceptor {
	return func(name string, next Operation) Operation {
		for i := len(interceptors) - 1; i >= 0; i-- {
			if interceptors[i] == nil {
				continue
			}
			next = interceptors[i](name, next)
		}
		return next
	}
}

// Run wraps op with the chain and executes it.
func Run(ctx context.Context, chain Interceptor, name string, op Operation) error {
	if chain == nil {
		return op(ctx)
	}
	return chain(name, op)(ctx)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case errors.Is(err, ErrRejected):
		return monitoring.OutcomeRejected
	default:
		return monitoring.OutcomeError
	}
}
