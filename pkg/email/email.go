package email

import (
	"net/url"
	"strings"
	"unicode"
)

// DeriveNameFromEmail guesses a display first/last name from the local part of
// an email address. Used as a fallback when a customer record carries no
// explicit name, e.g. when rendering a registration email greeting.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Customer", "Customer"
	}

	first := capitalize(parts[0])
	last := "Customer"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

// LoginLink builds the portal login URL with the username prefilled.
func LoginLink(baseURL, username string) string {
	q := url.Values{}
	q.Set("username", username)
	return strings.TrimRight(baseURL, "/") + "/login?" + q.Encode()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
