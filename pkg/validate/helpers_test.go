package validate

import (
	"errors"
	"fmt"
	"testing"

	verr "github.com/vhavlena/verischema/pkg/err"
)

type obj = map[string]any

type list = []any

func expectValid(t *testing.T, value, schemaDoc any, opts ...Option) {
	t.Helper()
	if err := Validate(value, schemaDoc, opts...); err != nil {
		t.Fatalf("Validate(%v) unexpected error: %v", value, err)
	}
}

func expectInvalid(t *testing.T, value, schemaDoc any, opts ...Option) *verr.ValidationError {
	t.Helper()
	err := Validate(value, schemaDoc, opts...)
	if err == nil {
		t.Fatalf("Validate(%v) expected a validation error", value)
	}
	if !errors.Is(err, verr.ErrValidation) {
		t.Fatalf("error %v does not match ErrValidation", err)
	}
	var ve *verr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error %T is not a *ValidationError", err)
	}
	return ve
}

// phase runs one subtest per value, all expected to pass or all to fail.
func phase(t *testing.T, name string, schemaDoc any, valid bool, values ...any) {
	t.Helper()
	for i, v := range values {
		v := v
		t.Run(fmt.Sprintf("%s/%d", name, i), func(t *testing.T) {
			t.Parallel()
			if valid {
				expectValid(t, v, schemaDoc)
			} else {
				expectInvalid(t, v, schemaDoc)
			}
		})
	}
}
