package jsonfile

import (
	"bank-ledger/internal/pkg/money"

	"github.com/shopspring/decimal"
)

type document struct {
	Customers []customerRecord `json:"customers"`
	Employees []employeeRecord `json:"employees"`
}

type customerRecord struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Address   string          `json:"address"`
	Accounts  []accountRecord `json:"accounts"`
}

type accountRecord struct {
	AccountType   string `json:"account_type"`
	Balance       amount `json:"balance"`
	AccountNumber string `json:"account_number"`
}

type employeeRecord struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	EmployeeID string `json:"employee_id"`
	Position   string `json:"position"`
}

// amount is written as a bare JSON number. Both quoted and unquoted numbers are
// accepted on read, within the range money.Check allows.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	if err := money.Check(d); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}
