// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	allDigits  = regexp.MustCompile(`^\d+$`)
	anyDigit   = regexp.MustCompile(`\d`)
	postalCode = regexp.MustCompile(`(?i)\b\d{5}(-\d{4})?\b|\b[A-Z]\d[A-Z]\s?\d[A-Z]\d\b`)
)

// CityValidator decides whether a token is a plausible city name.
type CityValidator struct {
	reject *regexp.Regexp
}

// NewCityValidator compiles terms into a single whole-word matcher.
func NewCityValidator(terms []string) *CityValidator {
	v := &CityValidator{}
	if len(terms) == 0 {
		return v
	}

	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(t)))
	}

	v.reject = regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)

	return v
}

// Valid reports whether city may be stored in the city column.
func (v *CityValidator) Valid(city string) bool {
	n := utf8.RuneCountInString(city)
	if n < 2 || n > 50 {
		return false
	}

	if allDigits.MatchString(city) || anyDigit.MatchString(city) {
		return false
	}

	if v.reject != nil && v.reject.MatchString(strings.ToLower(city)) {
		return false
	}

	return !postalCode.MatchString(city)
}

// ExtractCity pulls a city out of a free-text address, or returns "".
func (v *CityValidator) ExtractCity(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}

	var parts []string

	for _, p := range strings.Split(address, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	// cities usually trail the street and building parts
	for i := len(parts) - 1; i >= 0; i-- {
		if v.Valid(parts[i]) {
			return parts[i]
		}
	}

	for i := 1; i < len(parts)-1; i++ {
		if v.Valid(parts[i]) {
			return parts[i]
		}
	}

	if !strings.Contains(address, ",") && v.Valid(address) {
		return address
	}

	return ""
}
