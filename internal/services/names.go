package services

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName composes the text to NFC and trims surrounding whitespace.
// Inner spacing and length are kept as sent; adapters bound the length.
func normalizeName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
