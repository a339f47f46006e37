// Package bank is the in-memory ledger of customers and employees, loaded from
// and saved to a Repository.
package bank

import (
	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/domain/employee"
	"bank-ledger/internal/domain/product"
	"bank-ledger/internal/middleware"
	"bank-ledger/internal/pkg/apperrors"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	opAddCustomer     = "add_customer"
	opCreateAccount   = "create_account"
	opAddEmployee     = "add_employee"
	opDeposit         = "deposit"
	opWithdraw        = "withdraw"
	opBalance         = "balance"
	opApproveLoan     = "approve_loan"
	opIssueCreditCard = "issue_credit_card"
	opSave            = "save"
)

// Bank holds the ledger. It is not safe for concurrent use. Nothing is
// persisted until Save is called.
type Bank struct {
	customers []*customer.Customer
	employees []*employee.Employee

	repo   Repository
	logger *slog.Logger
	extra  []middleware.Interceptor
	inner  []middleware.Interceptor
	policy middleware.Policy
	chain  middleware.Interceptor
}

// Open loads the ledger from repo. A repository with no data yields an empty bank.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Bank, error) {
	if repo == nil {
		panic("bank repository cannot be nil")
	}

	b := &Bank{
		repo:   repo,
		logger: slog.Default(),
		policy: defaultPolicy(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With(slog.String("component", "bank"))

	chain := []middleware.Interceptor{middleware.Logging(b.logger), middleware.Metrics()}
	b.chain = middleware.Chain(append(chain, b.extra...)...)

	snap, err := repo.Load(ctx)
	if err != nil {
		b.logger.ErrorContext(ctx, "Failed to load ledger", slog.String("path", repo.Path()), slog.Any("error", err))
		return nil, fmt.Errorf("failed to open ledger %s: %w", repo.Path(), err)
	}
	b.customers = snap.Customers
	b.employees = snap.Employees
	if b.customers == nil {
		b.customers = []*customer.Customer{}
	}
	if b.employees == nil {
		b.employees = []*employee.Employee{}
	}

	b.logger.InfoContext(ctx, "Ledger opened",
		slog.String("path", repo.Path()),
		slog.Int("customers", len(b.customers)),
		slog.Int("employees", len(b.employees)))
	return b, nil
}

func (b *Bank) Path() string { return b.repo.Path() }

func (b *Bank) run(ctx context.Context, name string, op middleware.Operation, inner ...middleware.Interceptor) error {
	if len(inner) > 0 {
		op = middleware.Chain(inner...)(name, op)
	}
	return middleware.Run(ctx, b.chain, name, op)
}

func (b *Bank) AddCustomer(ctx context.Context, firstName, lastName, address string) (*customer.Customer, error) {
	var cust *customer.Customer
	err := b.run(ctx, opAddCustomer, func(ctx context.Context) error {
		cust = customer.NewCustomer(firstName, lastName, address)
		b.customers = append(b.customers, cust)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cust, nil
}

// CreateAccount opens a new account for cust, which must already belong to the bank.
func (b *Bank) CreateAccount(ctx context.Context, cust *customer.Customer, accountType account.Type, initialBalance decimal.Decimal) (*account.Account, error) {
	var acc *account.Account
	err := b.run(ctx, opCreateAccount, func(ctx context.Context) error {
		if err := b.ownsCustomer(cust); err != nil {
			return err
		}
		a, err := account.NewAccount(accountType, initialBalance)
		if err != nil {
			return err
		}
		cust.AddAccount(a)
		acc = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (b *Bank) AddEmployee(ctx context.Context, firstName, lastName, employeeID, position string) (*employee.Employee, error) {
	var emp *employee.Employee
	err := b.run(ctx, opAddEmployee, func(ctx context.Context) error {
		e, err := employee.NewEmployee(firstName, lastName, employeeID, position)
		if err != nil {
			return err
		}
		if _, err := b.FindEmployee(e.EmployeeID); err == nil {
			return fmt.Errorf("%w: employee %s", apperrors.ErrAlreadyExists, e.EmployeeID)
		}
		b.employees = append(b.employees, e)
		emp = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (b *Bank) Customers() []*customer.Customer { return slices.Clone(b.customers) }

func (b *Bank) Employees() []*employee.Employee { return slices.Clone(b.employees) }

// Customer returns the customer at the zero-based index.
func (b *Bank) Customer(index int) (*customer.Customer, error) {
	if index < 0 || index >= len(b.customers) {
		return nil, fmt.Errorf("%w: customer index %d", apperrors.ErrNotFound, index)
	}
	return b.customers[index], nil
}

func (b *Bank) FindAccount(number string) (*account.Account, error) {
	for _, c := range b.customers {
		if a, ok := c.FindAccount(number); ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, number)
}

func (b *Bank) FindEmployee(employeeID string) (*employee.Employee, error) {
	for _, e := range b.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: employee %s", apperrors.ErrNotFound, employeeID)
}

// Deposit reports false with a nil error when the amount is not positive.
func (b *Bank) Deposit(ctx context.Context, number string, amount decimal.Decimal) (bool, error) {
	return b.mutate(ctx, opDeposit, number, func(a *account.Account) bool { return a.Deposit(amount) })
}

// Withdraw reports false with a nil error when the amount is not positive or
// exceeds the balance.
func (b *Bank) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (bool, error) {
	return b.mutate(ctx, opWithdraw, number, func(a *account.Account) bool { return a.Withdraw(amount) })
}

func (b *Bank) mutate(ctx context.Context, name, number string, apply func(*account.Account) bool) (bool, error) {
	acc, err := b.FindAccount(number)
	if err != nil {
		b.logger.WarnContext(ctx, "Account not found", slog.String("operation", name), slog.String("account_number", number))
		return false, err
	}

	err = b.run(ctx, name, func(ctx context.Context) error {
		if !apply(acc) {
			return middleware.ErrRejected
		}
		return nil
	}, append([]middleware.Interceptor{middleware.Transaction(acc.Checkpoint)}, b.inner...)...)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, middleware.ErrRejected):
		return false, nil
	default:
		return false, err
	}
}

func (b *Bank) Balance(ctx context.Context, number string) (decimal.Decimal, error) {
	acc, err := b.FindAccount(number)
	if err != nil {
		return decimal.Zero, err
	}
	var balance decimal.Decimal
	err = b.run(ctx, opBalance, func(ctx context.Context) error {
		balance = acc.Balance()
		return nil
	})
	return balance, err
}

// ApproveLoan has emp issue a loan to cust. The loan is returned but is not
// attached to the customer or saved.
func (b *Bank) ApproveLoan(ctx context.Context, emp *employee.Employee, cust *customer.Customer, amount, interestRate decimal.Decimal) (*product.Loan, error) {
	var loan *product.Loan
	err := b.issue(ctx, opApproveLoan, emp, cust, func() error {
		l, err := product.NewLoan(cust, amount, interestRate)
		loan = l
		return err
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// IssueCreditCard has emp issue a credit card to cust. Like loans, cards are
// not saved.
func (b *Bank) IssueCreditCard(ctx context.Context, emp *employee.Employee, cust *customer.Customer, creditLimit decimal.Decimal) (*product.CreditCard, error) {
	var card *product.CreditCard
	err := b.issue(ctx, opIssueCreditCard, emp, cust, func() error {
		c, err := product.NewCreditCard(cust, creditLimit)
		card = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (b *Bank) issue(ctx context.Context, name string, emp *employee.Employee, cust *customer.Customer, build func() error) error {
	if emp == nil {
		return fmt.Errorf("%w: %s requires an employee", apperrors.ErrInvalidArgument, name)
	}
	ctx = middleware.WithEmployee(ctx, emp)
	return b.run(ctx, name, func(ctx context.Context) error {
		if err := b.ownsCustomer(cust); err != nil {
			return err
		}
		return build()
	}, middleware.Authorize(b.policy, b.logger))
}

func (b *Bank) ownsCustomer(cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer is required", apperrors.ErrInvalidArgument)
	}
	if !slices.Contains(b.customers, cust) {
		return fmt.Errorf("%w: customer %s does not belong to this bank", apperrors.ErrNotFound, cust.FullName())
	}
	return nil
}

// Snapshot returns the current ledger state.
func (b *Bank) Snapshot() Snapshot {
	return Snapshot{Customers: b.Customers(), Employees: b.Employees()}
}

// Save writes the whole ledger through the repository, replacing what was there.
func (b *Bank) Save(ctx context.Context) error {
	return b.run(ctx, opSave, func(ctx context.Context) error {
		if err := b.repo.Save(ctx, b.Snapshot()); err != nil {
			return fmt.Errorf("failed to save ledger %s: %w", b.repo.Path(), err)
		}
		return nil
	})
}
