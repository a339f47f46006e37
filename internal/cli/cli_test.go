package cli_test

import (
	"bank-ledger/internal/bank"
	"bank-ledger/internal/cli"
	"bank-ledger/internal/infrastructure/storage/jsonfile"
	"bank-ledger/internal/pkg/apperrors"
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func openBank(t *testing.T, path string) *bank.Bank {
	t.Helper()
	b, err := bank.Open(context.Background(), jsonfile.NewStore(path, discard), bank.WithLogger(discard))
	require.NoError(t, err)
	return b
}

func runScript(t *testing.T, path string, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	err := cli.New(openBank(t, path), in, &out, discard).Run(context.Background())
	return out.String(), err
}

func TestCLI_Run(t *testing.T) {
	t.Run("Full session updates balance and saves", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"1", "Jane", "Doe", "1 Main St",
			"2", "0", "checking", "100",
			"3", "0", "0", "50",
			"4", "0", "0", "30",
			"5", "0", "0",
			"6",
		)
		require.NoError(t, err)

		assert.Contains(t, out, "Customer added successfully!")
		assert.Contains(t, out, "Account created successfully!")
		assert.Contains(t, out, "Deposit successful. New balance: 150.00")
		assert.Contains(t, out, "Withdrawal successful. New balance: 120.00")
		assert.Contains(t, out, "Balance: 120.00")
		assert.Contains(t, out, "Data saved. Goodbye!")

		reloaded := openBank(t, path)
		customers := reloaded.Customers()
		require.Len(t, customers, 1)
		assert.Equal(t, "Jane", customers[0].FirstName)
		require.Len(t, customers[0].Accounts, 1)
		assert.True(t, decimal.NewFromInt(120).Equal(customers[0].Accounts[0].Balance()))
	})

	t.Run("Rejected operations leave the balance unchanged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"1", "Jane", "Doe", "1 Main St",
			"2", "0", "savings", "100",
			"4", "0", "0", "150",
			"3", "0", "0", "-5",
			"5", "0", "0",
			"6",
		)
		require.NoError(t, err)

		assert.Contains(t, out, "Withdrawal rejected")
		assert.Contains(t, out, "Deposit rejected")
		assert.Contains(t, out, "Balance: 100.00")
	})

	t.Run("Unknown choice re-prompts silently", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path, "42", "abc", "6")
		require.NoError(t, err)

		assert.Equal(t, 3, strings.Count(out, "Welcome to the Bank System"))
		assert.NotContains(t, out, "Error")
		assert.NotContains(t, out, "Invalid input")
	})

	t.Run("Invalid number is reported and the menu returns", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"1", "Jane", "Doe", "1 Main St",
			"2", "zero",
			"2", "0", "checking", "lots",
			"6",
		)
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Invalid input, please enter a number."))
		assert.Empty(t, openBank(t, path).Customers()[0].Accounts)
	})

	t.Run("Amount out of range is an invalid number", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"1", "Jane", "Doe", "1 Main St",
			"2", "0", "checking", "100",
			"3", "0", "0", "1e200000000",
			"4", "0", "0", "0.000000001",
			"5", "0", "0",
			"6",
		)
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Invalid input, please enter a number."))
		assert.Contains(t, out, "Balance: 100.00")
	})

	t.Run("Domain errors are printed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"3",
			"1", "Jane", "Doe", "1 Main St",
			"2", "0", "brokerage",
			"2", "5",
			"6",
		)
		require.NoError(t, err)

		assert.Contains(t, out, "Error: no customers yet")
		assert.Contains(t, out, "unknown account type")
		assert.Contains(t, out, "customer index 5")
	})

	t.Run("End of input exits and saves", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path, "1", "Jane", "Doe")
		require.NoError(t, err)

		assert.Contains(t, out, "Data saved. Goodbye!")
		assert.Empty(t, openBank(t, path).Customers(), "the interrupted customer is not added")
	})

	t.Run("Employees issue products", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank_data.json")

		out, err := runScript(t, path,
			"1", "Jane", "Doe", "1 Main St",
			"7", "Ada", "Lovelace", "E-1", "Manager",
			"7", "Tom", "Teller", "E-2", "Teller",
			"8", "E-1", "0", "5000", "4.5",
			"9", "E-1", "0", "1500",
			"9", "E-2", "0", "1500",
			"10",
			"6",
		)
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Employee added successfully!"))
		assert.Contains(t, out, "Approved: Loan of 5000.00 at 4.5% for Jane Doe")
		assert.Contains(t, out, "Issued: Credit card with limit 1500.00 for Jane Doe")
		assert.Contains(t, out, "forbidden")
		assert.Contains(t, out, "0: Jane Doe, 1 Main St")

		assert.Len(t, openBank(t, path).Employees(), 2)
	})

	t.Run("Save failure is returned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "bank_data.json")

		out, err := runScript(t, path, "6")

		assert.ErrorIs(t, err, apperrors.ErrPersistence)
		assert.Contains(t, out, "Failed to save data")
	})
}
