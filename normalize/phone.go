// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// ErrorMarker is what Sheets shows in a cell whose formula failed to evaluate.
const ErrorMarker = "#ERROR!"

var (
	phoneLike   = regexp.MustCompile(`\+?\d[\d\s\-()]{5,}`)
	multiSpaces = regexp.MustCompile(` {2,}`)
	nonDigits   = regexp.MustCompile(`\D`)
)

// CleanPhone normalizes a work phone cell. When several numbers are separated
// by "/", the first one that looks like a phone number wins.
func CleanPhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "prefer not to say") || strings.EqualFold(s, ErrorMarker) {
		return ""
	}

	if strings.Contains(s, "/") {
		for _, part := range strings.Split(s, "/") {
			part = strings.TrimSpace(part)
			if phoneLike.MatchString(part) {
				s = part

				break
			}
		}
	}

	return strings.TrimSpace(multiSpaces.ReplaceAllString(strings.TrimSpace(s), " "))
}

// IsCorruptedPhone detects values damaged by spreadsheet formula evaluation:
// "+91-044-28296490" typed into a cell becomes the negative number -28296443.
func IsCorruptedPhone(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}

	if strings.EqualFold(s, ErrorMarker) {
		return true
	}

	n, err := strconv.ParseFloat(s, 64)

	return err == nil && n < 0
}

// LooksLikePhone reports whether s carries between 7 and 15 digits.
func LooksLikePhone(s string) bool {
	digits := nonDigits.ReplaceAllString(s, "")

	return len(digits) >= 7 && len(digits) <= 15
}

// SanitizeForSheets prefixes values Sheets would read as a formula with a quote.
func SanitizeForSheets(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, ErrorMarker) {
		return ""
	}

	switch s[0] {
	case '=', '+', '-', '@':
		return "'" + s
	}

	return s
}
