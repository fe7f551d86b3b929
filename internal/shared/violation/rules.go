package violation

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotBlank rejects strings made only of whitespace, Unicode spaces included.
// Empty and nil values pass so that validation.Required reports them.
var NotBlank = validation.By(func(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
})

// Positive accepts int and int64 values (or pointers to them) greater than zero.
// A nil pointer passes; pair it with validation.NotNil when the value is required.
var Positive = validation.By(func(value interface{}) error {
	switch n := value.(type) {
	case int64:
		if n > 0 {
			return nil
		}
	case *int64:
		if n == nil || *n > 0 {
			return nil
		}
	case int:
		if n > 0 {
			return nil
		}
	case *int:
		if n == nil || *n > 0 {
			return nil
		}
	}
	return errors.New("must be a positive integer")
})
