// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strings"
)

// WebsiteConfig holds the answers that mean "no website".
type WebsiteConfig struct {
	NonAnswers map[string]struct{}
}

// DefaultWebsiteConfig returns the phrases seen in the submission form.
func DefaultWebsiteConfig() WebsiteConfig {
	return WebsiteConfig{
		NonAnswers: set(
			"prefer not to say", "not available", "i do not have a work website",
			"none", "na", "n/a", "", "being updated", "retired", "n.a.", "n.a",
		),
	}
}

const websiteTrailing = " .,/;:\n\t\r"

var (
	explicitURL = regexp.MustCompile(`(?:https?://|www\.)[^\s,;]+`)
	bareDomain  = regexp.MustCompile(`(?i)^[a-z0-9\-.]+\.[a-z]{2,}([/\w\-.?=&%]*)?$`)
	segmentSep  = regexp.MustCompile(`[;\n]`)
)

// trimWebsite lowercases s and strips surrounding space and trailing punctuation.
func trimWebsite(s string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(s)), websiteTrailing)
}

func (c WebsiteConfig) isNonAnswer(s string) bool {
	_, ok := c.NonAnswers[s]

	return ok
}

// firstSegment keeps only what precedes the first ";" or line break.
func firstSegment(s string) string {
	if !segmentSep.MatchString(s) {
		return s
	}

	return trimWebsite(segmentSep.Split(s, 2)[0])
}

// extractExplicitURL finds the first http(s):// or www. prefixed URL in s.
func extractExplicitURL(s string) (string, bool) {
	m := explicitURL.FindString(s)
	if m == "" {
		return "", false
	}

	m = strings.TrimRight(m, websiteTrailing)
	if strings.HasPrefix(m, "www.") {
		m = "https://" + m
	}

	return strings.TrimRight(m, "/"), true
}

// asBareDomain accepts "example.org/path" style values and gives them a scheme.
func asBareDomain(s string) (string, bool) {
	if !strings.Contains(s, ".") || strings.ContainsAny(s, " \t") {
		return "", false
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return strings.TrimRight(s, "/"), true
	}

	if bareDomain.MatchString(s) {
		return "https://" + strings.TrimRight(s, "/"), true
	}

	return "", false
}

// Normalize turns a website cell into an https URL when one can be recognized,
// the cleaned text when it cannot, and "" for non-answers.
func (c WebsiteConfig) Normalize(raw string) string {
	s := trimWebsite(raw)
	if c.isNonAnswer(s) {
		return ""
	}

	s = firstSegment(s)
	if c.isNonAnswer(s) {
		return ""
	}

	if u, ok := extractExplicitURL(s); ok {
		return u
	}

	if u, ok := asBareDomain(s); ok {
		return u
	}

	return s
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}

	return m
}
