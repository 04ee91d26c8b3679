package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldForSearch lowercases s and strips diacritics so "aniversario"
// matches "Aniversário".
func foldForSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}

// matchesSearch reports whether term occurs in any of the fields. An empty
// term matches everything.
func matchesSearch(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	needle := foldForSearch(term)
	for _, f := range fields {
		if strings.Contains(foldForSearch(f), needle) {
			return true
		}
	}
	return false
}
