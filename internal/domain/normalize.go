package domain

import (
	"strings"
	"unicode"
)

// NormalizeName prepares a pokemon name for use as a registry key and URL
// segment: trims surrounding whitespace and lowercases it. Hyphens are kept,
// they separate form variants ("deoxys-attack").
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BaseSpeciesName returns the part of name before the first hyphen.
// "deoxys-attack" -> "deoxys"; names without a hyphen are returned unchanged.
func BaseSpeciesName(name string) string {
	base, _, _ := strings.Cut(name, "-")
	return base
}

// CleanFlavorText replaces control characters (form feeds, line breaks, soft
// hyphen) with spaces and compresses runs of whitespace into one.
func CleanFlavorText(text string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\u00ad' {
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(mapped), " ")
}
