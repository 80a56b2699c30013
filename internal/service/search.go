package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AllCategories is the filter value that disables a category filter.
const AllCategories = "Semua"

// Fold lowercases s and strips diacritics so that "Tondanó" matches "tondano".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// MatchesQuery reports whether any field contains the query after folding. An
// empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	q := Fold(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), q) {
			return true
		}
	}
	return false
}

// Distinct returns the non-empty values in first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := []string{}
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// WithAll prepends AllCategories to a derived filter list.
func WithAll(values []string) []string {
	return append([]string{AllCategories}, values...)
}

func selected(filter string) bool {
	return filter != "" && filter != AllCategories
}
