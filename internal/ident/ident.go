// Package ident derives stable criterion identifiers from human-readable
// criterion names.
package ident

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ID converts a criterion name into an identifier. It NFD-normalizes,
// strips combining marks, lowercases, converts every run of
// non-alphanumeric characters to a single underscore, and trims leading
// and trailing underscores.
func ID(name string) string {
	// NFD normalize to decompose accented characters, then drop the
	// combining (Mn) marks.
	name = norm.NFD.String(name)

	var b strings.Builder
	for _, r := range name {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	name = b.String()

	b.Reset()
	lastUnderscore := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}
