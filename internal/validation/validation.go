// Package validation holds the field validator contract shared by every
// submission form: a validator either accepts a candidate value, rejects it
// with a structured, user-displayable Error, or reports an infrastructure
// failure when its lookup dependency is unreachable. The two failure kinds
// are never conflated: rejections come back as *Error, infrastructure
// failures as ordinary errors wrapping sentinel.ErrUnavailable.
package validation

import (
	"context"
	"sort"
	"strings"
)

// Code classifies why a candidate value was rejected.
type Code string

const (
	// CodeInvalid marks a value that fails a structural constraint
	// (wrong length, missing character class, non-numeric).
	CodeInvalid Code = "invalid"
	// CodeNotFound marks a value with no matching record in an
	// authoritative directory. An empty directory is a normal miss,
	// not a fault.
	CodeNotFound Code = "not_found"
	// CodeFormat marks a value the field coercion layer could not accept
	// (bad email syntax, unknown choice).
	CodeFormat Code = "format"
)

// Error is a structured rejection produced by exactly one validator for one
// candidate value. Field is stamped by the owning form; validators leave it
// empty.
type Error struct {
	Field           string            `json:"field"`
	Code            Code              `json:"code"`
	MessageTemplate string            `json:"message_template"`
	Params          map[string]string `json:"params,omitempty"`
}

// Error satisfies the error interface with the expanded message.
func (e *Error) Error() string { return e.Message() }

// Message expands {param} placeholders in the template from Params.
func (e *Error) Message() string {
	msg := e.MessageTemplate
	if len(e.Params) == 0 {
		return msg
	}
	// Deterministic expansion order so identical errors render identically.
	keys := make([]string, 0, len(e.Params))
	for k := range e.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, "{"+k+"}", e.Params[k])
	}
	return msg
}

// WithField returns a copy of the error stamped with the field name.
func (e *Error) WithField(name string) *Error {
	clone := *e
	clone.Field = name
	if e.Params != nil {
		clone.Params = make(map[string]string, len(e.Params))
		for k, v := range e.Params {
			clone.Params[k] = v
		}
	}
	return &clone
}

// Validator decides accept/reject for a single candidate value.
//
// A nil return accepts the value. A *Error return rejects it. Any other
// error is an infrastructure failure (lookup unreachable) and must not be
// shown to the user as a field error.
type Validator interface {
	Validate(ctx context.Context, value string) error
}

// Func adapts a plain function to the Validator interface.
type Func func(ctx context.Context, value string) error

func (f Func) Validate(ctx context.Context, value string) error { return f(ctx, value) }

// Lookup is the read-only directory consulted by existence checks.
type Lookup interface {
	Find(ctx context.Context, identifier string) (bool, error)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(ctx context.Context, identifier string) (bool, error)

func (f LookupFunc) Find(ctx context.Context, identifier string) (bool, error) {
	return f(ctx, identifier)
}

// AsError extracts the structured rejection from err, if it is one.
func AsError(err error) (*Error, bool) {
	ve, ok := err.(*Error)
	return ve, ok
}
