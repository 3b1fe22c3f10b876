package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount to the provider minor unit
// (cents/paise). The amount must be positive and must round-trip exactly:
// sub-cent fractions are precision loss, not something to round away.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero, got %s", ErrInvalidAmount, amount)
	}
	minor := amount.Mul(oneHundred)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %s is not representable in minor units", ErrInvalidAmount, amount)
	}
	return minor.IntPart(), nil
}

// FromMinorUnits converts a minor-unit amount back to the major unit.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(oneHundred)
}
