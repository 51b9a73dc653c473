package form

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"fleetgate/internal/validation"
)

// Kind selects the base coercion applied to a field before any custom
// validators run.
type Kind string

const (
	// KindChar accepts any text within the declared length bounds.
	KindChar Kind = "char"
	// KindEmail additionally requires email syntax.
	KindEmail Kind = "email"
	// KindChoice requires membership in the declared choice set.
	KindChoice Kind = "choice"
)

// Field declares one named input of a submission form.
//
// Base coercion (required, length bounds, syntax, choice membership) runs
// first; if it rejects the value the field's custom validators are skipped,
// so a caller sees one coherent error for that field instead of a cascade.
type Field struct {
	Name      string
	Label     string
	Kind      Kind
	Required  bool
	MinLength int
	MaxLength int
	Choices   []string

	Validators []validation.Validator
}

// coerce applies the base type/shape checks. It returns the coerced value or
// a structured rejection; infrastructure failures cannot happen here.
func (f Field) coerce(value string) (string, *validation.Error) {
	value = strings.TrimSpace(value)

	if value == "" {
		if f.Required {
			return "", &validation.Error{
				Code:            validation.CodeFormat,
				MessageTemplate: "this field is required",
			}
		}
		return "", nil
	}

	if f.MinLength > 0 && utf8.RuneCountInString(value) < f.MinLength {
		return "", &validation.Error{
			Code:            validation.CodeFormat,
			MessageTemplate: "must be at least {expected} characters long, got {actual}",
			Params: map[string]string{
				"expected": strconv.Itoa(f.MinLength),
				"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
			},
		}
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(value) > f.MaxLength {
		return "", &validation.Error{
			Code:            validation.CodeFormat,
			MessageTemplate: "must be at most {expected} characters long, got {actual}",
			Params: map[string]string{
				"expected": strconv.Itoa(f.MaxLength),
				"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
			},
		}
	}

	switch f.Kind {
	case KindEmail:
		if !govalidator.IsEmail(value) {
			return "", &validation.Error{
				Code:            validation.CodeFormat,
				MessageTemplate: "'{value}' is not a valid email address",
				Params:          map[string]string{"value": value},
			}
		}
	case KindChoice:
		if !contains(f.Choices, value) {
			return "", &validation.Error{
				Code:            validation.CodeFormat,
				MessageTemplate: "'{value}' is not one of the available choices",
				Params:          map[string]string{"value": value},
			}
		}
	}

	return value, nil
}

// validate runs the field's custom validators against the coerced value.
// Every validator runs; each failure contributes at most one error.
func (f Field) validate(ctx context.Context, value string) ([]validation.Error, error) {
	if value == "" && !f.Required {
		return nil, nil
	}

	var errs []validation.Error
	for _, v := range f.Validators {
		err := v.Validate(ctx, value)
		if err == nil {
			continue
		}
		ve, ok := validation.AsError(err)
		if !ok {
			return nil, err
		}
		errs = append(errs, *ve.WithField(f.Name))
	}
	return errs, nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
