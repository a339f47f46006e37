package account

import (
	"bank-ledger/internal/pkg/apperrors"
	"bank-ledger/internal/pkg/money"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Type string

const (
	TypeChecking Type = "checking"
	TypeSavings  Type = "savings"
)

func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeChecking, TypeSavings:
		return t, nil
	default:
		return "", apperrors.NewValidationError("account_type", fmt.Sprintf("unknown account type %q (want checking or savings)", s))
	}
}

// Account is a single customer account. The balance is never negative: any
// mutation that would make it so is rejected, not clamped.
type Account struct {
	accountType Type
	balance     decimal.Decimal
	number      string
}

func NewAccount(accountType Type, initialBalance decimal.Decimal) (*Account, error) {
	return Restore(accountType, initialBalance, uuid.NewString())
}

// Restore rebuilds an account that already has a number, e.g. one read back
// from the data file.
func Restore(accountType Type, balance decimal.Decimal, number string) (*Account, error) {
	t, err := ParseType(string(accountType))
	if err != nil {
		return nil, err
	}
	if err := money.Check(balance); err != nil {
		return nil, err
	}
	if balance.IsNegative() {
		return nil, apperrors.NewValidationError("balance", "balance cannot be negative")
	}
	if strings.TrimSpace(number) == "" {
		return nil, apperrors.NewValidationError("account_number", "account number is required")
	}
	return &Account{accountType: t, balance: balance, number: number}, nil
}

func (a *Account) Type() Type { return a.accountType }

func (a *Account) Number() string { return a.number }

func (a *Account) Balance() decimal.Decimal { return a.balance }

// Deposit adds amount and reports true only when amount is positive and
// within the range money.Check allows.
func (a *Account) Deposit(amount decimal.Decimal) bool {
	if money.Check(amount) != nil || !amount.IsPositive() {
		return false
	}
	a.balance = a.balance.Add(amount)
	return true
}

// Withdraw subtracts amount and reports true only when 0 < amount <= balance.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if money.Check(amount) != nil || !amount.IsPositive() || amount.GreaterThan(a.balance) {
		return false
	}
	a.balance = a.balance.Sub(amount)
	return true
}

// Checkpoint captures the current balance; calling the returned func puts it back.
func (a *Account) Checkpoint() func() {
	saved := a.balance
	return func() { a.balance = saved }
}

func (a *Account) String() string {
	return fmt.Sprintf("%s %s (%s)", a.accountType, a.number, a.balance.StringFixed(2))
}
