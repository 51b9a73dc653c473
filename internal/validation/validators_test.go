package validation

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetgate/pkg/sentinel"
)

func TestFixedLength_VIN(t *testing.T) {
	v := FixedLength(17)

	t.Run("accepts exactly 17 characters regardless of content", func(t *testing.T) {
		require.NoError(t, v.Validate(context.Background(), "1HGCM82633A12345A"))
		require.NoError(t, v.Validate(context.Background(), "?????????????????"))
	})

	t.Run("rejects other lengths with expected and actual", func(t *testing.T) {
		for _, value := range []string{"", "SHORT", "1HGCM82633A12345", "1HGCM82633A12345AA"} {
			err := v.Validate(context.Background(), value)
			ve, ok := AsError(err)
			require.True(t, ok, "want *Error for %q", value)
			assert.Equal(t, CodeInvalid, ve.Code)
			assert.Equal(t, "17", ve.Params["expected"])
			assert.Equal(t, strconv.Itoa(len(value)), ve.Params["actual"])
		}
	})

	t.Run("SHORT carries actual 5", func(t *testing.T) {
		err := v.Validate(context.Background(), "SHORT")
		ve, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, map[string]string{"expected": "17", "actual": "5"}, ve.Params)
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		// 17 runes, 34 bytes.
		require.NoError(t, v.Validate(context.Background(), "ÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅÅ"))
	})
}

func TestDigits(t *testing.T) {
	v := Digits()
	require.NoError(t, v.Validate(context.Background(), "867730050855555"))

	err := v.Validate(context.Background(), "86773OO5O855555")
	ve, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalid, ve.Code)
}

func TestExists(t *testing.T) {
	known := map[string]bool{"alice@example.com": true}
	lookup := LookupFunc(func(_ context.Context, identifier string) (bool, error) {
		return known[identifier], nil
	})
	v := Exists(lookup, "user")

	t.Run("accepts known identifier", func(t *testing.T) {
		require.NoError(t, v.Validate(context.Background(), "alice@example.com"))
	})

	t.Run("rejects unknown identifier with value echoed", func(t *testing.T) {
		err := v.Validate(context.Background(), "ghost@example.com")
		ve, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, CodeNotFound, ve.Code)
		assert.Equal(t, "ghost@example.com", ve.Params["value"])
	})

	t.Run("empty directory is a normal miss, not a fault", func(t *testing.T) {
		empty := Exists(LookupFunc(func(context.Context, string) (bool, error) {
			return false, nil
		}), "user")
		err := empty.Validate(context.Background(), "anyone@example.com")
		_, ok := AsError(err)
		require.True(t, ok)
	})

	t.Run("unreachable directory is infrastructure, not a field error", func(t *testing.T) {
		down := Exists(LookupFunc(func(context.Context, string) (bool, error) {
			return false, errors.New("connection refused")
		}), "user")
		err := down.Validate(context.Background(), "alice@example.com")
		require.Error(t, err)
		_, ok := AsError(err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
	})
}

func TestPassword(t *testing.T) {
	v := Password()

	tests := []struct {
		name  string
		value string
		ok    bool
	}{
		{"valid password", "Sup3r-Secret", true},
		{"too short", "Ab1!", false},
		{"missing uppercase", "sup3r-secret", false},
		{"missing lowercase", "SUP3R-SECRET", false},
		{"missing digit", "Super-Secret", false},
		{"missing symbol", "Sup3rSecret0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.value)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			ve, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, CodeInvalid, ve.Code)
		})
	}

	t.Run("length counts characters, not bytes", func(t *testing.T) {
		// 7 runes but 8 bytes; still below the 8 character minimum.
		err := v.Validate(context.Background(), "P\u00e4ss1!7")
		ve, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, "7", ve.Params["actual"])
	})

	t.Run("too long", func(t *testing.T) {
		long := "Aa1!" + string(make([]byte, 70))
		err := v.Validate(context.Background(), long)
		ve, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, "64", ve.Params["expected"])
	})
}

func TestErrorMessage(t *testing.T) {
	e := &Error{
		Code:            CodeInvalid,
		MessageTemplate: "must be exactly {expected} characters long, got {actual}",
		Params:          map[string]string{"expected": "17", "actual": "5"},
	}
	assert.Equal(t, "must be exactly 17 characters long, got 5", e.Message())
	assert.Equal(t, e.Message(), e.Error())
}

func TestErrorWithField(t *testing.T) {
	e := &Error{Code: CodeNotFound, Params: map[string]string{"value": "x"}}
	stamped := e.WithField("username")
	assert.Equal(t, "username", stamped.Field)
	assert.Empty(t, e.Field)

	// Params is copied, not shared.
	stamped.Params["value"] = "y"
	assert.Equal(t, "x", e.Params["value"])
}
