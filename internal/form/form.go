// Package form aggregates field validators over a named, ordered set of
// fields. Submit evaluates every field independently and either yields an
// immutable payload of coerced values or the full ordered set of field
// errors; it never raises a validation failure as an error return.
package form

import (
	"context"
	"fmt"

	"fleetgate/internal/validation"
	dErrors "fleetgate/pkg/domain-errors"
)

// Payload maps field name to validated, coerced value. It only exists after
// every rule passed and is owned by the caller.
type Payload map[string]string

// Get returns the value for a field name, empty if absent.
func (p Payload) Get(name string) string { return p[name] }

// Form is an ordered set of field declarations.
type Form struct {
	fields []Field
}

// New constructs a form. Field names must be unique and non-empty.
func New(fields ...Field) (*Form, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "form field name cannot be empty")
		}
		if _, dup := seen[f.Name]; dup {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("duplicate form field %q", f.Name))
		}
		seen[f.Name] = struct{}{}
	}
	return &Form{fields: append([]Field(nil), fields...)}, nil
}

// MustNew is New for static form declarations known correct at compile time.
func MustNew(fields ...Field) *Form {
	f, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return f
}

// Fields returns the declared field names in order.
func (f *Form) Fields() []string {
	names := make([]string, len(f.fields))
	for i, fld := range f.fields {
		names[i] = fld.Name
	}
	return names
}

// Submit evaluates every declared field against raw input.
//
// All fields are checked independently with no short-circuit, so the caller
// sees every failing field in one response. Errors come back in field
// declaration order, at most one per field per violated rule. The third
// return is reserved for infrastructure failures (a lookup dependency
// unreachable) and is never a validation outcome.
//
// Submit is idempotent: unchanged raw input against an unchanged lookup
// store yields identical results.
func (f *Form) Submit(ctx context.Context, raw map[string]string) (Payload, []validation.Error, error) {
	payload := make(Payload, len(f.fields))
	var errs []validation.Error

	for _, field := range f.fields {
		value, coerceErr := field.coerce(raw[field.Name])
		if coerceErr != nil {
			errs = append(errs, *coerceErr.WithField(field.Name))
			continue
		}

		fieldErrs, infraErr := field.validate(ctx, value)
		if infraErr != nil {
			return nil, nil, fmt.Errorf("field %q: %w", field.Name, infraErr)
		}
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}

		payload[field.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}
	return payload, nil, nil
}
