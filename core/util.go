package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// EqualFold reports whether a and b are equal once cleaned, ignoring case.
// Names (page types, emails) are compared this way for duplicates.
func EqualFold(a, b string) bool {
	return strings.EqualFold(CleanString(a), CleanString(b))
}

// IsBlank reports whether s is empty once cleaned.
func IsBlank(s string) bool {
	return CleanString(s) == ""
}
