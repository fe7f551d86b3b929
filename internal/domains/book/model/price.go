package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"bookcatalog/internal/shared/core"
)

// MaxBookPrice is the largest price accepted through the API.
const MaxBookPrice int64 = 9_999_999_999

var ErrPriceOutOfRange = errors.New("price out of range")

// BookPrice is a non-negative Amount.
type BookPrice struct {
	amount core.Amount
}

func NewBookPrice(v int64) (BookPrice, error) {
	if v < 0 || v > MaxBookPrice {
		return BookPrice{}, fmt.Errorf("%w: %d", ErrPriceOutOfRange, v)
	}
	a, err := core.AmountOf(v)
	if err != nil {
		return BookPrice{}, err
	}
	return BookPrice{amount: a}, nil
}

// ParseBookPrice reads a NUMERIC column rendered as text.
func ParseBookPrice(s string) (BookPrice, error) {
	a, err := core.ParseAmount(s)
	if err != nil {
		return BookPrice{}, err
	}
	return BookPrice{amount: a}, nil
}

func (p BookPrice) Decimal() decimal.Decimal {
	return p.amount.Decimal()
}

func (p BookPrice) Int64() int64 {
	return p.amount.Int64()
}

func (p BookPrice) Equal(other BookPrice) bool {
	return p.amount.Equal(other.amount)
}

func (p BookPrice) String() string {
	return p.amount.String()
}
