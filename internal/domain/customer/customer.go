package customer

import (
	"bank-ledger/internal/domain/account"
	"strings"
)

// Customer exclusively owns its accounts; an account is never shared between customers.
type Customer struct {
	FirstName string
	LastName  string
	Address   string
	Accounts  []*account.Account
}

func NewCustomer(firstName, lastName, address string) *Customer {
	return &Customer{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Address:   strings.TrimSpace(address),
		Accounts:  []*account.Account{},
	}
}

func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Customer) AddAccount(a *account.Account) {
	if a == nil {
		return
	}
	c.Accounts = append(c.Accounts, a)
}

func (c *Customer) FindAccount(number string) (*account.Account, bool) {
	for _, a := range c.Accounts {
		if a.Number() == number {
			return a, true
		}
	}
	return nil, false
}
