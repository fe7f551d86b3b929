// Package violation accumulates field-tagged check failures so that a single
// request reports every problem at once.
package violation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookcatalog/internal/shared/core"
)

// Rule inspects a command and returns the violations it finds. A non-nil
// error means the rule could not run (e.g. a lookup failed) and aborts validation.
type Rule[C any] func(ctx context.Context, cmd C) ([]core.Violation, error)

// Validator runs every registered rule in order and never stops at the first failure.
type Validator[C any] struct {
	rules []Rule[C]
}

func New[C any](rules ...Rule[C]) *Validator[C] {
	return &Validator[C]{rules: rules}
}

// Validate returns nil, a *core.ValidationError listing all violations,
// or the first infrastructure error raised by a rule.
func (v *Validator[C]) Validate(ctx context.Context, cmd C) error {
	var collected []core.Violation
	for _, rule := range v.rules {
		found, err := rule(ctx, cmd)
		if err != nil {
			return err
		}
		collected = append(collected, found...)
	}
	if len(collected) == 0 {
		return nil
	}
	return core.NewValidationError(collected...)
}

// Field validates a single value with ozzo rules and tags the result with field.
func Field(field string, value interface{}, rules ...validation.Rule) ([]core.Violation, error) {
	return FromOzzo(field, validation.Validate(value, rules...))
}

// FromOzzo converts an ozzo-validation result into violations. Nested
// validation.Errors are flattened into dotted or indexed paths
// ("authorIds[1]"), sorted by key since ozzo reports them as a map.
func FromOzzo(field string, err error) ([]core.Violation, error) {
	if err == nil {
		return nil, nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return nil, fmt.Errorf("validation rule failed on %s: %w", field, internal.InternalError())
	}

	var nested validation.Errors
	if errors.As(err, &nested) {
		keys := make([]string, 0, len(nested))
		for k := range nested {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return lessKey(keys[i], keys[j]) })

		var out []core.Violation
		for _, k := range keys {
			vs, err := FromOzzo(joinPath(field, k), nested[k])
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
		return out, nil
	}

	return []core.Violation{{Field: field, Message: err.Error()}}, nil
}

// FromStruct flattens the result of validation.ValidateStruct, reporting
// fields in the given order first and any others afterwards.
func FromStruct(err error, order ...string) ([]core.Violation, error) {
	if err == nil {
		return nil, nil
	}

	var fields validation.Errors
	if !errors.As(err, &fields) {
		return FromOzzo("", err)
	}

	var out []core.Violation
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		seen[name] = true
		if fieldErr, ok := fields[name]; ok {
			vs, err := FromOzzo(name, fieldErr)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
	}

	rest := validation.Errors{}
	for name, fieldErr := range fields {
		if !seen[name] {
			rest[name] = fieldErr
		}
	}
	vs, err := FromOzzo("", rest)
	if err != nil {
		return nil, err
	}
	return append(out, vs...), nil
}

// AsError wraps violations in a *core.ValidationError, or returns nil when there are none.
func AsError(vs []core.Violation) error {
	if len(vs) == 0 {
		return nil
	}
	return core.NewValidationError(vs...)
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	if _, err := strconv.Atoi(key); err == nil {
		return parent + "[" + key + "]"
	}
	return parent + "." + key
}

// lessKey orders numeric keys numerically so "authorIds[10]" follows "authorIds[9]".
func lessKey(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai < bi
	}
	return a < b
}
