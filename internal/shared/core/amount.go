package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

// Amount is a non-negative arbitrary-precision decimal.
type Amount struct {
	value decimal.Decimal
}

func NewAmount(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("%w: got %s", ErrNegativeAmount, d.String())
	}
	return Amount{value: d}, nil
}

// AmountOf builds an Amount from the integer representation used on the wire.
func AmountOf(v int64) (Amount, error) {
	return NewAmount(decimal.NewFromInt(v))
}

// ParseAmount reads the textual form stored in NUMERIC columns.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("failed to parse amount %q: %w", s, err)
	}
	return NewAmount(d)
}

func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Int64 truncates any fractional part. Amounts created through AmountOf
// round-trip exactly.
func (a Amount) Int64() int64 {
	return a.value.IntPart()
}

func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

func (a Amount) String() string {
	return a.value.String()
}
