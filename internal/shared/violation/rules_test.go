package violation

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	blank := []string{" ", "\t\n", "\v", "\u3000", "\u00a0\u00a0", "\u2003 \u2029"}
	for _, s := range blank {
		assert.EqualError(t, validation.Validate(s, NotBlank), "cannot be blank", "%q", s)
		assert.EqualError(t, validation.Validate(&s, NotBlank), "cannot be blank", "pointer %q", s)
	}

	for _, s := range []string{"", "Go", " x ", "\u3000x"} {
		assert.NoError(t, validation.Validate(s, NotBlank), "%q", s)
	}

	var missing *string
	assert.NoError(t, validation.Validate(missing, NotBlank))
}

func TestNotBlankLeavesEmptyToRequired(t *testing.T) {
	vs, err := Field("name", "", validation.Required, NotBlank)
	assert.NoError(t, err)
	assert.Len(t, vs, 1)
	assert.Equal(t, "name", vs[0].Field)
}

func TestPositive(t *testing.T) {
	one, zero := 1, 0
	oneL, negL := int64(1), int64(-4)
	var nilInt *int

	for _, v := range []interface{}{1, int64(9), &one, &oneL, nilInt} {
		assert.NoError(t, validation.Validate(v, Positive), "%v", v)
	}
	for _, v := range []interface{}{0, -1, int64(0), &zero, &negL, "7"} {
		assert.EqualError(t, validation.Validate(v, Positive), "must be a positive integer", "%v", v)
	}
}
