package core

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidID = errors.New("id must be a positive integer")

// ID identifies an entity of kind E. The type parameter is never stored;
// it only keeps an author id from being passed where a book id is expected.
type ID[E any] struct {
	value int64
}

// NewID returns an ID for v, rejecting zero and negative values.
func NewID[E any](v int64) (ID[E], error) {
	if v <= 0 {
		return ID[E]{}, fmt.Errorf("%w: got %d", ErrInvalidID, v)
	}
	return ID[E]{value: v}, nil
}

// MustID is NewID for values already known to be valid, such as
// primary keys read back from the database.
func MustID[E any](v int64) ID[E] {
	id, err := NewID[E](v)
	if err != nil {
		panic(err)
	}
	return id
}

// IDsOf converts raw values, stopping at the first invalid one.
func IDsOf[E any](values []int64) ([]ID[E], error) {
	ids := make([]ID[E], 0, len(values))
	for _, v := range values {
		id, err := NewID[E](v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Int64s is the inverse of IDsOf.
func Int64s[E any](ids []ID[E]) []int64 {
	values := make([]int64, len(ids))
	for i, id := range ids {
		values[i] = id.value
	}
	return values
}

func (id ID[E]) Value() int64 {
	return id.value
}

// IsZero reports whether id is the zero value, i.e. was never assigned.
func (id ID[E]) IsZero() bool {
	return id.value == 0
}

func (id ID[E]) String() string {
	return strconv.FormatInt(id.value, 10)
}
