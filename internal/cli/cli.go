// Package cli implements the numbered menu that drives the ledger from a terminal.
package cli

import (
	"bank-ledger/internal/bank"
	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/domain/customer"
	"bank-ledger/internal/domain/product"
	"bank-ledger/internal/pkg/money"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errInvalidNumber = errors.New("invalid number")

type CLI struct {
	bank   *bank.Bank
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

func New(b *bank.Bank, in io.Reader, out io.Writer, logger *slog.Logger) *CLI {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLI{
		bank:   b,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With(slog.String("component", "cli")),
	}
}

// Run shows the menu until the user exits or input ends, then saves the ledger.
func (c *CLI) Run(ctx context.Context) error {
	for {
		c.printMenu()
		choice, err := c.prompt("Enter your choice: ")
		if err != nil {
			break
		}

		if choice == "6" {
			break
		}
		if err := c.dispatch(ctx, choice); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			c.report(ctx, err)
		}
	}

	if err := c.bank.Save(ctx); err != nil {
		c.println("Failed to save data:", err)
		return err
	}
	c.println("Data saved. Goodbye!")
	return nil
}

func (c *CLI) printMenu() {
	c.println()
	c.println("Welcome to the Bank System")
	c.println("1. Add Customer")
	c.println("2. Create Account")
	c.println("3. Deposit")
	c.println("4. Withdraw")
	c.println("5. Check Balance")
	c.println("6. Exit")
	c.println("7. Add Employee")
	c.println("8. Approve Loan")
	c.println("9. Issue Credit Card")
	c.println("10. List Customers")
}

func (c *CLI) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return c.addCustomer(ctx)
	case "2":
		return c.createAccount(ctx)
	case "3":
		return c.deposit(ctx)
	case "4":
		return c.withdraw(ctx)
	case "5":
		return c.checkBalance(ctx)
	case "7":
		return c.addEmployee(ctx)
	case "8":
		return c.approveLoan(ctx)
	case "9":
		return c.issueCreditCard(ctx)
	case "10":
		c.listCustomers()
		return nil
	default:
		return nil
	}
}

func (c *CLI) report(ctx context.Context, err error) {
	if errors.Is(err, errInvalidNumber) {
		c.println("Invalid input, please enter a number.")
		return
	}
	c.logger.WarnContext(ctx, "Menu action failed", slog.Any("error", err))
	c.println("Error:", err)
}

func (c *CLI) addCustomer(ctx context.Context) error {
	first, err := c.prompt("Enter first name: ")
	if err != nil {
		return err
	}
	last, err := c.prompt("Enter last name: ")
	if err != nil {
		return err
	}
	address, err := c.prompt("Enter address: ")
	if err != nil {
		return err
	}
	if _, err := c.bank.AddCustomer(ctx, first, last, address); err != nil {
		return err
	}
	c.println("Customer added successfully!")
	return nil
}

func (c *CLI) createAccount(ctx context.Context) error {
	cust, err := c.selectCustomer()
	if err != nil {
		return err
	}
	kind, err := c.prompt("Enter account type (checking/savings): ")
	if err != nil {
		return err
	}
	accountType, err := account.ParseType(kind)
	if err != nil {
		return err
	}
	initial, err := c.promptAmount("Enter initial balance: ")
	if err != nil {
		return err
	}
	acc, err := c.bank.CreateAccount(ctx, cust, accountType, initial)
	if err != nil {
		return err
	}
	c.printf("Account created successfully! Account number: %s\n", acc.Number())
	return nil
}

func (c *CLI) deposit(ctx context.Context) error {
	acc, err := c.selectAccount()
	if err != nil {
		return err
	}
	amount, err := c.promptAmount("Enter amount to deposit: ")
	if err != nil {
		return err
	}
	ok, err := c.bank.Deposit(ctx, acc.Number(), amount)
	if err != nil {
		return err
	}
	if !ok {
		c.println("Deposit rejected: amount must be positive.")
		return nil
	}
	c.printf("Deposit successful. New balance: %s\n", acc.Balance().StringFixed(2))
	return nil
}

func (c *CLI) withdraw(ctx context.Context) error {
	acc, err := c.selectAccount()
	if err != nil {
		return err
	}
	amount, err := c.promptAmount("Enter amount to withdraw: ")
	if err != nil {
		return err
	}
	ok, err := c.bank.Withdraw(ctx, acc.Number(), amount)
	if err != nil {
		return err
	}
	if !ok {
		c.println("Withdrawal rejected: amount must be positive and no more than the balance.")
		return nil
	}
	c.printf("Withdrawal successful. New balance: %s\n", acc.Balance().StringFixed(2))
	return nil
}

func (c *CLI) checkBalance(ctx context.Context) error {
	acc, err := c.selectAccount()
	if err != nil {
		return err
	}
	balance, err := c.bank.Balance(ctx, acc.Number())
	if err != nil {
		return err
	}
	c.printf("Balance: %s\n", balance.StringFixed(2))
	return nil
}

func (c *CLI) addEmployee(ctx context.Context) error {
	var fields [4]string
	labels := [4]string{"Enter first name: ", "Enter last name: ", "Enter employee ID: ", "Enter position: "}
	for i, label := range labels {
		v, err := c.prompt(label)
		if err != nil {
			return err
		}
		fields[i] = v
	}
	if _, err := c.bank.AddEmployee(ctx, fields[0], fields[1], fields[2], fields[3]); err != nil {
		return err
	}
	c.println("Employee added successfully!")
	return nil
}

func (c *CLI) approveLoan(ctx context.Context) error {
	id, err := c.prompt("Enter your employee ID: ")
	if err != nil {
		return err
	}
	emp, err := c.bank.FindEmployee(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	cust, err := c.selectCustomer()
	if err != nil {
		return err
	}
	amount, err := c.promptAmount("Enter loan amount: ")
	if err != nil {
		return err
	}
	rate, err := c.promptAmount("Enter interest rate (%): ")
	if err != nil {
		return err
	}
	loan, err := c.bank.ApproveLoan(ctx, emp, cust, amount, rate)
	if err != nil {
		return err
	}
	c.println("Approved:", product.Describe(loan))
	return nil
}

func (c *CLI) issueCreditCard(ctx context.Context) error {
	id, err := c.prompt("Enter your employee ID: ")
	if err != nil {
		return err
	}
	emp, err := c.bank.FindEmployee(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	cust, err := c.selectCustomer()
	if err != nil {
		return err
	}
	limit, err := c.promptAmount("Enter credit limit: ")
	if err != nil {
		return err
	}
	card, err := c.bank.IssueCreditCard(ctx, emp, cust, limit)
	if err != nil {
		return err
	}
	c.println("Issued:", product.Describe(card))
	return nil
}

func (c *CLI) listCustomers() {
	customers := c.bank.Customers()
	if len(customers) == 0 {
		c.println("No customers yet.")
		return
	}
	for idx, cust := range customers {
		c.printf("%d: %s, %s\n", idx, cust.FullName(), cust.Address)
		for _, acc := range cust.Accounts {
			c.printf("   %-8s %s  %s\n", acc.Type(), acc.Number(), acc.Balance().StringFixed(2))
		}
	}
}

func (c *CLI) selectCustomer() (*customer.Customer, error) {
	customers := c.bank.Customers()
	if len(customers) == 0 {
		return nil, errors.New("no customers yet, add one first")
	}
	c.println("Select customer by index:")
	for idx, cust := range customers {
		c.printf("%d: %s\n", idx, cust.FullName())
	}
	idx, err := c.promptIndex("Enter customer index: ")
	if err != nil {
		return nil, err
	}
	return c.bank.Customer(idx)
}

func (c *CLI) selectAccount() (*account.Account, error) {
	cust, err := c.selectCustomer()
	if err != nil {
		return nil, err
	}
	if len(cust.Accounts) == 0 {
		return nil, fmt.Errorf("%s has no accounts", cust.FullName())
	}
	c.println("Select account by index:")
	for idx, acc := range cust.Accounts {
		c.printf("%d: %s %s\n", idx, acc.Type(), acc.Number())
	}
	idx, err := c.promptIndex("Enter account index: ")
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(cust.Accounts) {
		return nil, fmt.Errorf("no account at index %d", idx)
	}
	return cust.Accounts[idx], nil
}

// prompt returns io.EOF once input is exhausted.
func (c *CLI) prompt(label string) (string, error) {
	c.printf("%s", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *CLI) promptIndex(label string) (int, error) {
	s, err := c.prompt(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidNumber, s)
	}
	return n, nil
}

func (c *CLI) promptAmount(label string) (decimal.Decimal, error) {
	s, err := c.prompt(label)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := money.Parse(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errInvalidNumber, s)
	}
	return d, nil
}

func (c *CLI) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *CLI) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}
