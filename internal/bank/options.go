package bank

import (
	"bank-ledger/internal/middleware"
	"log/slog"
)

type Option func(*Bank)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Bank) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithInterceptors appends interceptors that run inside the default logging
// and metrics interceptors, around every operation.
func WithInterceptors(interceptors ...middleware.Interceptor) Option {
	return func(b *Bank) {
		b.extra = append(b.extra, interceptors...)
	}
}

// WithMutationInterceptors adds interceptors that run inside the commit/rollback
// boundary of deposits and withdrawals. An error from one of them rolls the
// balance back.
func WithMutationInterceptors(interceptors ...middleware.Interceptor) Option {
	return func(b *Bank) {
		b.inner = append(b.inner, interceptors...)
	}
}

// WithAuthPolicy sets the policy checked before an employee issues a product.
func WithAuthPolicy(policy middleware.Policy) Option {
	return func(b *Bank) {
		b.policy = policy
	}
}

func defaultPolicy() middleware.Policy {
	return middleware.Policy{Enabled: true, Positions: []string{"Manager", "Loan Officer"}}
}
