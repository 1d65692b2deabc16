// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strings"

	"github.com/genetics-map/genmap/utils/textutil"
)

// Aliases rewrites known bad city values to their canonical name. Keys are
// lowercase and trimmed.
type Aliases map[string]string

// DefaultCityAliases expands the state abbreviations respondents type in the city column.
func DefaultCityAliases() Aliases {
	return Aliases{
		"ny":  "New York City",
		"nyc": "New York City",
	}
}

// Lookup returns the canonical value for s, if there is one.
func (a Aliases) Lookup(s string) (string, bool) {
	v, ok := a[strings.ToLower(strings.TrimSpace(s))]

	return v, ok
}

// Apply returns the canonical value for s, or s unchanged.
func (a Aliases) Apply(s string) string {
	if v, ok := a.Lookup(s); ok {
		return v
	}

	return s
}

var newlines = regexp.MustCompile(`\s*(\r\n|\r|\n)+\s*`)

// CleanText collapses whitespace runs to a single space and trims the ends.
func CleanText(s string) string {
	return textutil.CollapseSpaces(s)
}

// CleanAddress is CleanText after turning line breaks into ", ".
func CleanAddress(s string) string {
	s = strings.TrimSpace(s)
	s = newlines.ReplaceAllString(s, ", ")

	return CleanText(s)
}

// CleanFirstName is CleanText without literal periods.
func CleanFirstName(s string) string {
	return CleanText(strings.ReplaceAll(s, ".", ""))
}

// StripComment drops an inline "# ..." annotation: "Mexico# test" is "Mexico".
func StripComment(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	return strings.TrimSpace(s)
}

// CleanCountry strips inline comments.
func CleanCountry(s string) string {
	return StripComment(s)
}

// CleanCity strips inline comments and applies the alias map.
func CleanCity(s string, aliases Aliases) string {
	s = StripComment(s)
	if s == "" {
		return ""
	}

	return aliases.Apply(s)
}
