package account_test

import (
	"bank-ledger/internal/domain/account"
	"bank-ledger/internal/pkg/apperrors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newAccount(t *testing.T, balance string) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(account.TypeChecking, dec(balance))
	require.NoError(t, err)
	return acc
}

func TestNewAccount(t *testing.T) {
	t.Run("Generates a unique account number", func(t *testing.T) {
		a1 := newAccount(t, "0")
		a2 := newAccount(t, "0")

		assert.NotEqual(t, a1.Number(), a2.Number())
		_, err := uuid.Parse(a1.Number())
		assert.NoError(t, err, "account number should be a UUID")
	})

	t.Run("Keeps type and initial balance", func(t *testing.T) {
		acc, err := account.NewAccount(account.TypeSavings, dec("100.50"))
		require.NoError(t, err)

		assert.Equal(t, account.TypeSavings, acc.Type())
		assert.True(t, dec("100.50").Equal(acc.Balance()))
	})

	t.Run("Rejects unknown type", func(t *testing.T) {
		_, err := account.NewAccount(account.Type("brokerage"), decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("Rejects negative initial balance", func(t *testing.T) {
		_, err := account.NewAccount(account.TypeChecking, dec("-1"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestParseType(t *testing.T) {
	tp, err := account.ParseType(" Savings ")
	require.NoError(t, err)
	assert.Equal(t, account.TypeSavings, tp)

	_, err = account.ParseType("")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRestore(t *testing.T) {
	acc, err := account.Restore(account.TypeChecking, dec("12.34"), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", acc.Number())

	_, err = account.Restore(account.TypeChecking, dec("1"), " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccount_Deposit(t *testing.T) {
	t.Run("Positive amount increases balance", func(t *testing.T) {
		for _, amt := range []string{"0.01", "1", "50", "1234567.89"} {
			acc := newAccount(t, "10")
			assert.True(t, acc.Deposit(dec(amt)), "deposit %s", amt)
			assert.True(t, dec("10").Add(dec(amt)).Equal(acc.Balance()), "deposit %s", amt)
		}
	})

	t.Run("Non-positive amount is rejected", func(t *testing.T) {
		for _, amt := range []string{"0", "-0.01", "-5"} {
			acc := newAccount(t, "10")
			assert.False(t, acc.Deposit(dec(amt)), "deposit %s", amt)
			assert.True(t, dec("10").Equal(acc.Balance()), "deposit %s", amt)
		}
	})
}

func TestAccount_Withdraw(t *testing.T) {
	t.Run("Amount within balance decreases balance", func(t *testing.T) {
		for _, amt := range []string{"0.01", "50", "100"} {
			acc := newAccount(t, "100")
			assert.True(t, acc.Withdraw(dec(amt)), "withdraw %s", amt)
			assert.True(t, dec("100").Sub(dec(amt)).Equal(acc.Balance()), "withdraw %s", amt)
		}
	})

	t.Run("Overdraft or non-positive amount is rejected", func(t *testing.T) {
		for _, amt := range []string{"100.01", "150", "0", "-1"} {
			acc := newAccount(t, "100")
			assert.False(t, acc.Withdraw(dec(amt)), "withdraw %s", amt)
			assert.True(t, dec("100").Equal(acc.Balance()), "withdraw %s", amt)
		}
	})

	t.Run("Balance never goes negative", func(t *testing.T) {
		acc := newAccount(t, "0.30")
		for i := 0; i < 5; i++ {
			acc.Withdraw(dec("0.10"))
			assert.False(t, acc.Balance().IsNegative())
		}
		assert.True(t, acc.Balance().IsZero())
	})
}

func TestAccount_Scenario(t *testing.T) {
	acc := newAccount(t, "100.0")

	assert.False(t, acc.Withdraw(dec("150.0")))
	assert.True(t, dec("100").Equal(acc.Balance()))

	assert.True(t, acc.Withdraw(dec("50.0")))
	assert.True(t, dec("50").Equal(acc.Balance()))

	assert.False(t, acc.Deposit(dec("-5.0")))
	assert.True(t, dec("50").Equal(acc.Balance()))
}

func TestAccount_Checkpoint(t *testing.T) {
	acc := newAccount(t, "20")
	restore := acc.Checkpoint()

	require.True(t, acc.Deposit(dec("5")))
	require.True(t, dec("25").Equal(acc.Balance()))

	restore()
	assert.True(t, dec("20").Equal(acc.Balance()))
}

func TestAccount_AmountRange(t *testing.T) {
	t.Run("Out-of-range amounts are rejected without touching the balance", func(t *testing.T) {
		for _, amt := range []string{"1e200000000", "1e-200000000", "0.000000001", "1e18"} {
			acc := newAccount(t, "100")
			assert.False(t, acc.Deposit(dec(amt)), "deposit %s", amt)
			assert.False(t, acc.Withdraw(dec(amt)), "withdraw %s", amt)
			assert.True(t, dec("100").Equal(acc.Balance()), "amount %s", amt)
		}
	})

	t.Run("Out-of-range initial balance is a validation error", func(t *testing.T) {
		_, err := account.NewAccount(account.TypeChecking, dec("1e200000000"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = account.Restore(account.TypeSavings, dec("0.000000001"), "acc-1")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
