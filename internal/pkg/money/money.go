// Package money bounds the decimal amounts the ledger accepts.
package money

import (
	"bank-ledger/internal/pkg/apperrors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxFractionDigits = 8
	MaxIntegerDigits  = 18
)

// Check rejects amounts with more than MaxFractionDigits decimals or more than
// MaxIntegerDigits integer digits. It only inspects the exponent and
// coefficient, so it never rescales.
func Check(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp < -MaxFractionDigits {
		return apperrors.NewValidationError("amount", fmt.Sprintf("at most %d decimal places are allowed", MaxFractionDigits))
	}
	if exp > MaxIntegerDigits || int64(d.NumDigits())+exp > MaxIntegerDigits {
		return apperrors.NewValidationError("amount", fmt.Sprintf("at most %d integer digits are allowed", MaxIntegerDigits))
	}
	return nil
}

// Parse reads a decimal amount and applies Check.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", apperrors.ErrInvalidArgument, s)
	}
	if err := Check(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
