// Package product holds the bank products an employee can issue to a customer.
//
// A Product is a closed set of variants: *Loan and *CreditCard. Products keep a
// non-owning reference to their customer and are not attached to it.
package product

import (
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/pkg/apperrors"
	"bank-ledger/internal/pkg/money"
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindLoan       Kind = "loan"
	KindCreditCard Kind = "credit_card"
)

type Product interface {
	Kind() Kind
	Customer() *customer.Customer
	sealed()
}

var (
	_ Product = (*Loan)(nil)
	_ Product = (*CreditCard)(nil)
)

type base struct {
	customer *customer.Customer
}

func (b base) Customer() *customer.Customer { return b.customer }

func (base) sealed() {}

type Loan struct {
	base
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
}

// NewLoan requires a positive amount and a non-negative rate.
func NewLoan(cust *customer.Customer, amount, interestRate decimal.Decimal) (*Loan, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: loan requires a customer", apperrors.ErrInvalidArgument)
	}
	if err := money.Check(amount); err != nil {
		return nil, err
	}
	if err := money.Check(interestRate); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount", "loan amount must be positive")
	}
	if interestRate.IsNegative() {
		return nil, apperrors.NewValidationError("interest_rate", "interest rate cannot be negative")
	}
	return &Loan{base: base{customer: cust}, Amount: amount, InterestRate: interestRate}, nil
}

func (*Loan) Kind() Kind { return KindLoan }

type CreditCard struct {
	base
	CreditLimit decimal.Decimal
}

func NewCreditCard(cust *customer.Customer, creditLimit decimal.Decimal) (*CreditCard, error) {
	if cust == nil {
		return nil, fmt.Errorf("%w: credit card requires a customer", apperrors.ErrInvalidArgument)
	}
	if err := money.Check(creditLimit); err != nil {
		return nil, err
	}
	if !creditLimit.IsPositive() {
		return nil, apperrors.NewValidationError("credit_limit", "credit limit must be positive")
	}
	return &CreditCard{base: base{customer: cust}, CreditLimit: creditLimit}, nil
}

func (*CreditCard) Kind() Kind { return KindCreditCard }

// Describe renders a one-line summary of p for display.
func Describe(p Product) string {
	switch v := p.(type) {
	case *Loan:
		return fmt.Sprintf("Loan of %s at %s%% for %s",
			v.Amount.StringFixed(2), v.InterestRate.String(), v.Customer().FullName())
	case *CreditCard:
		return fmt.Sprintf("Credit card with limit %s for %s",
			v.CreditLimit.StringFixed(2), v.Customer().FullName())
	default:
		return "unknown product"
	}
}
