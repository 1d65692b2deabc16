// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LanguageConfig drives LanguageListParser.
type LanguageConfig struct {
	// Boilerplate matches interpreter phrases removed from the cell before it is split.
	Boilerplate *regexp.Regexp

	// StopWords are lowercase words that survive cleaning but are not languages.
	StopWords map[string]struct{}
}

// DefaultLanguageConfig returns the phrases and stop words seen in submissions.
func DefaultLanguageConfig() LanguageConfig {
	return LanguageConfig{
		Boilerplate: regexp.MustCompile(`(?i)(all other languages with interpretation services|` +
			`others? with (provided )?interpreter( services)?|` +
			`interpretation services available|` +
			`we also use interpreters?|` +
			`limited [a-z]+|` +
			`with use of [a-z ]+|` +
			`other languages with an interpreter present|` +
			`interpreter present|` +
			`translation|` +
			`globo interpreter)`),
		StopWords: set(
			"other", "others", "interpreter", "interpreter present",
			"interpretation", "translation", "services", "provided",
			"available", "languages", "with", "an", "present", "some",
		),
	}
}

var (
	parenthesized = regexp.MustCompile(`\([^)]*\)`)
	preferNot     = regexp.MustCompile(`(?i)prefer not to say`)
	listSeparator = regexp.MustCompile(`[;|/\n]`)
	conjunction   = regexp.MustCompile(`(?i)(\s+and\s+|\s+&\s+|^and\s+|\s+and$|^&\s+|\s+&$)`)
	nonLetter     = regexp.MustCompile(`[^\p{L},\s]`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	commaRun      = regexp.MustCompile(`,+`)
)

// dropAsides removes "(...)" groups.
func dropAsides(s string) string {
	return parenthesized.ReplaceAllString(strings.TrimSpace(s), "")
}

// stripBoilerplate removes interpreter phrases; they are signaled through
// InterpreterFlagDetector, not listed as languages.
func (c LanguageConfig) stripBoilerplate(s string) string {
	if c.Boilerplate == nil {
		return strings.TrimSpace(s)
	}

	return strings.TrimSpace(c.Boilerplate.ReplaceAllString(s, ""))
}

// unifyDelimiters turns every list separator and conjunction into a comma.
func unifyDelimiters(s string) string {
	s = listSeparator.ReplaceAllString(s, ",")

	return conjunction.ReplaceAllString(s, ",")
}

// scrub keeps letters, commas and single spaces.
func scrub(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	s = nonLetter.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = commaRun.ReplaceAllString(s, ",")

	return strings.Trim(s, ", ")
}

// tokenize splits on commas. A chunk of several words yields each word on its
// own: "Sign Language" becomes "Sign" and "Language".
func tokenize(s string) []string {
	var out []string

	for _, chunk := range strings.Split(s, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		out = append(out, strings.Fields(chunk)...)
	}

	return out
}

func (c LanguageConfig) dropStopWords(words []string) []string {
	out := words[:0]

	for _, w := range words {
		if _, ok := c.StopWords[strings.ToLower(w)]; ok {
			continue
		}

		out = append(out, w)
	}

	return out
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	return cases.Title(language.Und).String(s)
}

// dedupeSorted capitalizes, removes case-insensitive duplicates keeping the first, and sorts.
func dedupeSorted(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, w := range words {
		w = capitalize(w)

		key := strings.ToLower(w)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, w)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})

	return out
}

// ParseLanguages turns a free text language cell into a sorted, deduplicated
// list of capitalized language names. It returns nil when nothing is left.
func (c LanguageConfig) ParseLanguages(raw string) []string {
	s := dropAsides(raw)
	if preferNot.MatchString(s) {
		return nil
	}

	s = c.stripBoilerplate(s)
	s = unifyDelimiters(s)
	s = scrub(s)

	words := c.dropStopWords(tokenize(s))
	if len(words) == 0 {
		return nil
	}

	return dedupeSorted(words)
}

// FormatLanguages joins a language list the way it is stored in the sheet.
func FormatLanguages(langs []string) string {
	return strings.Join(langs, ", ")
}
