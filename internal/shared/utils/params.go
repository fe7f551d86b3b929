package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/shared/core"
)

// ParseIDParam reads a positive integer path parameter as an ID of kind E.
// Failures come back as *core.ValidationError tagged with the parameter name.
func ParseIDParam[E any](c *gin.Context, name string) (core.ID[E], error) {
	raw := c.Param(name)

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return core.ID[E]{}, core.NewValidationError(core.Violation{Field: name, Message: "must be a positive integer"})
	}

	id, err := core.NewID[E](v)
	if err != nil {
		return core.ID[E]{}, core.NewValidationError(core.Violation{Field: name, Message: "must be a positive integer"})
	}

	return id, nil
}

// ParseOptionalDate parses a YYYY-MM-DD string; nil stays nil.
func ParseOptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(core.DateLayout, *s)
	if err != nil {
		return nil, core.NewValidationError(core.Violation{Field: field, Message: "must be a valid date"})
	}
	return &t, nil
}
