package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fleetgate/pkg/sentinel"
)

// FixedLength rejects values whose length differs from n. VIN numbers use
// n=17. Length is counted in characters, not bytes.
func FixedLength(n int) Validator {
	return Func(func(_ context.Context, value string) error {
		if utf8.RuneCountInString(value) != n {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "must be exactly {expected} characters long, got {actual}",
				Params: map[string]string{
					"expected": strconv.Itoa(n),
					"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
				},
			}
		}
		return nil
	})
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int) Validator {
	return Func(func(_ context.Context, value string) error {
		if utf8.RuneCountInString(value) > n {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "must be at most {expected} characters long, got {actual}",
				Params: map[string]string{
					"expected": strconv.Itoa(n),
					"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
				},
			}
		}
		return nil
	})
}

// MinLength rejects values shorter than n characters.
func MinLength(n int) Validator {
	return Func(func(_ context.Context, value string) error {
		if utf8.RuneCountInString(value) < n {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "must be at least {expected} characters long, got {actual}",
				Params: map[string]string{
					"expected": strconv.Itoa(n),
					"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
				},
			}
		}
		return nil
	})
}

// Digits rejects values containing anything but ASCII digits. IMEI numbers
// are numeric.
func Digits() Validator {
	return Func(func(_ context.Context, value string) error {
		for _, r := range value {
			if r < '0' || r > '9' {
				return &Error{
					Code:            CodeInvalid,
					MessageTemplate: "must contain only digits, got '{value}'",
					Params:          map[string]string{"value": value},
				}
			}
		}
		return nil
	})
}

// Exists rejects values with no matching record in the directory. The noun
// names what is being looked up ("user", "device") for the message. A miss in
// an empty directory is a normal rejection; a directory that cannot be
// reached is an infrastructure failure and surfaces as a plain error
// wrapping sentinel.ErrUnavailable.
func Exists(lookup Lookup, noun string) Validator {
	return Func(func(ctx context.Context, value string) error {
		found, err := lookup.Find(ctx, value)
		if err != nil {
			return fmt.Errorf("%s lookup: %w: %w", noun, sentinel.ErrUnavailable, err)
		}
		if !found {
			return &Error{
				Code:            CodeNotFound,
				MessageTemplate: "couldn't find a " + noun + " matching '{value}'",
				Params:          map[string]string{"value": value},
			}
		}
		return nil
	})
}

// Password enforces the portal password policy: 8..64 characters with at
// least one uppercase letter, one lowercase letter, one digit, and one
// punctuation character.
func Password() Validator {
	return Func(func(_ context.Context, value string) error {
		if utf8.RuneCountInString(value) < 8 {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "password must be at least {expected} characters in length, got {actual}",
				Params: map[string]string{
					"expected": "8",
					"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
				},
			}
		}
		if utf8.RuneCountInString(value) > 64 {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "password must be at most {expected} characters in length, got {actual}",
				Params: map[string]string{
					"expected": "64",
					"actual":   strconv.Itoa(utf8.RuneCountInString(value)),
				},
			}
		}

		var upper, lower, digit, punct bool
		for _, r := range value {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsLower(r):
				lower = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				punct = true
			}
		}
		var missing []string
		if !upper {
			missing = append(missing, "an uppercase letter")
		}
		if !lower {
			missing = append(missing, "a lowercase letter")
		}
		if !digit {
			missing = append(missing, "a digit")
		}
		if !punct {
			missing = append(missing, "a special symbol")
		}
		if len(missing) > 0 {
			return &Error{
				Code:            CodeInvalid,
				MessageTemplate: "password must contain at least {missing}",
				Params:          map[string]string{"missing": strings.Join(missing, ", ")},
			}
		}
		return nil
	})
}
