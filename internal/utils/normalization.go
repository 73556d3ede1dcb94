package utils

import "strings"

// NormalizeCategory canonicalizes a category tag for catalog lookups.
// "  System   Design " and "system design" normalize to the same key.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.Join(strings.Fields(category), " "))
}
