// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailSanitizer picks the first valid address out of a semicolon separated cell.
type EmailSanitizer struct {
	// Valid decides whether a cleaned candidate is an email address. When nil
	// the sanitizer falls back to requiring an "@" and a ".".
	Valid func(string) bool
}

// NewEmailSanitizer returns a sanitizer backed by the validator "email" rule.
func NewEmailSanitizer() *EmailSanitizer {
	v := validator.New()

	return &EmailSanitizer{
		Valid: func(s string) bool {
			return v.Var(s, "required,email") == nil
		},
	}
}

func looksLikeEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// cleanEmailCandidate drops every whitespace rune and comma and lowercases the rest.
func cleanEmailCandidate(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")

	return strings.ToLower(s)
}

// Sanitize returns the first candidate that validates, or "" when none does.
func (e *EmailSanitizer) Sanitize(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	valid := looksLikeEmail
	if e != nil && e.Valid != nil {
		valid = e.Valid
	}

	for _, candidate := range strings.Split(raw, ";") {
		candidate = cleanEmailCandidate(candidate)
		if candidate == "" {
			continue
		}

		if valid(candidate) {
			return candidate
		}
	}

	return ""
}
