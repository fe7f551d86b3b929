package model

import (
	"errors"
	"fmt"
	"time"

	"bookcatalog/internal/shared/core"
)

var ErrBirthDateNotPast = errors.New("birth date must be before today")

// BirthDate is a calendar date that was strictly in the past when it was
// entered. It is not re-checked when loaded back from storage.
type BirthDate struct {
	value time.Time
}

// NewBirthDate accepts date only if it falls before today.
func NewBirthDate(date, today time.Time) (BirthDate, error) {
	d := core.DateOf(date)
	if !d.Before(core.DateOf(today)) {
		return BirthDate{}, fmt.Errorf("%w: got %s", ErrBirthDateNotPast, d.Format(core.DateLayout))
	}
	return BirthDate{value: d}, nil
}

// RestoreBirthDate rebuilds a stored date without validating it.
func RestoreBirthDate(date time.Time) BirthDate {
	return BirthDate{value: core.DateOf(date)}
}

func (b BirthDate) Time() time.Time {
	return b.value
}

func (b BirthDate) String() string {
	return b.value.Format(core.DateLayout)
}

func (b BirthDate) Equal(other BirthDate) bool {
	return b.value.Equal(other.value)
}
