package bank

import (
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/domain/employee"
	"context"
)

// Snapshot is the full ledger state as it is loaded and saved.
type Snapshot struct {
	Customers []*customer.Customer
	Employees []*employee.Employee
}

// Repository persists whole snapshots. Load on a store that has never been
// saved returns an empty snapshot and no error.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Path() string
}
