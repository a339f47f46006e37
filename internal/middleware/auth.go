package middleware

import (
	"bank-ledger/internal/config"
	"bank-ledger/internal/domain/employee"
	"bank-ledger/internal/pkg/apperrors"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type employeeKey struct{}

func WithEmployee(ctx context.Context, emp *employee.Employee) context.Context {
	return context.WithValue(ctx, employeeKey{}, emp)
}

func EmployeeFromContext(ctx context.Context) (*employee.Employee, bool) {
	emp, ok := ctx.Value(employeeKey{}).(*employee.Employee)
	return emp, ok && emp != nil
}

type Policy struct {
	Enabled   bool
	Positions []string
}

func PolicyFromConfig(cfg config.AuthConfig) Policy {
	return Policy{Enabled: cfg.Enabled, Positions: cfg.AuthorizedPositions}
}

// Allows reports whether pos is one of the authorized positions, ignoring case.
func (p Policy) Allows(pos string) bool {
	pos = strings.TrimSpace(pos)
	for _, allowed := range p.Positions {
		if strings.EqualFold(strings.TrimSpace(allowed), pos) {
			return true
		}
	}
	return false
}

func Authorize(policy Policy, logger *slog.Logger) Interceptor {
	if !policy.Enabled {
		return func(_ string, next Operation) Operation {
			return next
		}
	}

	return func(name string, next Operation) Operation {
		return func(ctx context.Context) error {
			emp, ok := EmployeeFromContext(ctx)
			if !ok {
				logger.WarnContext(ctx, "Authorize: no employee on operation", slog.String("operation", name))
				return fmt.Errorf("%w: %s requires an employee", apperrors.ErrForbidden, name)
			}
			if !policy.Allows(emp.Position) {
				logger.WarnContext(ctx, "Authorize: position not allowed",
					slog.String("operation", name),
					slog.String("employee_id", emp.EmployeeID),
					slog.String("position", emp.Position))
				return fmt.Errorf("%w: employee %s (%s) may not perform %s",
					apperrors.ErrForbidden, emp.EmployeeID, emp.Position, name)
			}
			logger.DebugContext(ctx, "Authorize: employee authorized",
				slog.String("operation", name), slog.String("employee_id", emp.EmployeeID))
			return next(ctx)
		}
	}
}
