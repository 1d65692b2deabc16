// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AnonymousName replaces a first name that is missing or a placeholder.
const AnonymousName = "Anonymous Contributor"

var placeholderNames = set("nan", "n/a", "na", "null", "undefined", "-", "--", "")

var titlePrefixes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\bdr\s+`), "Dr. "},
	{regexp.MustCompile(`(?i)\bmr\s+`), "Mr. "},
	{regexp.MustCompile(`(?i)\bmrs\s+`), "Mrs. "},
	{regexp.MustCompile(`(?i)\bms\s+`), "Ms. "},
	{regexp.MustCompile(`(?i)\bprof\s+`), "Prof. "},
	{regexp.MustCompile(`(?i)\bsr\s+`), "Sr. "},
	{regexp.MustCompile(`(?i)\bjr\s+`), "Jr. "},
}

// IsPlaceholderName reports whether a name cell carries no real name.
func IsPlaceholderName(s string) bool {
	_, ok := placeholderNames[strings.ToLower(strings.TrimSpace(s))]

	return ok
}

// NormalizeTitlePrefix adds the missing period to honorifics: "Dr Smith" is "Dr. Smith".
func NormalizeTitlePrefix(s string) string {
	for _, p := range titlePrefixes {
		s = p.re.ReplaceAllString(s, p.repl)
	}

	return s
}

// TitleCase upper-cases the first letter of each word, hyphenated parts
// included, and lower-cases the rest.
func TitleCase(s string) string {
	return cases.Title(language.Und).String(CleanText(s))
}

// CleanName cleans a single name field.
func CleanName(s string) string {
	if IsPlaceholderName(s) {
		return ""
	}

	return TitleCase(NormalizeTitlePrefix(strings.TrimSpace(s)))
}

// CleanFullName cleans both name fields. A provider without a usable first
// name is listed anonymously, dropping the last name as well.
func CleanFullName(first, last string) (string, string) {
	first = CleanName(first)
	if first == "" {
		return AnonymousName, ""
	}

	return first, CleanName(last)
}
