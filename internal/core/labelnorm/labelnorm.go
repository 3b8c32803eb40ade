// Package labelnorm canonicalizes classifier labels so votes from different
// models and workflows can be compared
package labelnorm

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases name and drops everything outside [a-z0-9_]
// "Masala Dosa!" -> "masaladosa". The result is stable under repeated application
func Normalize(name string) string {
	// Casers carry state, so one per call.
	// Lower only; folding expands ß to ss
	lower := cases.Lower(language.Und).String(name)
	b := make([]byte, 0, len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if isWord(c) {
			b = append(b, c)
		}
	}
	return string(b)
}

func isWord(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
