// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strings"
)

// InterpreterFlagDetector recognizes the many ways respondents say they work with interpreters.
type InterpreterFlagDetector struct {
	Patterns []*regexp.Regexp
}

// DefaultInterpreterFlagDetector returns the detector used for the language column.
func DefaultInterpreterFlagDetector() InterpreterFlagDetector {
	patterns := []string{
		`interpret(er|ation)( services| present| available)?`,
		`with use of`,
		`with provided interpreter`,
		`others? with (provided )?interpreter( services)?`,
		`all other languages with interpretation services`,
		`we also use interpreters?`,
		`globo interpreter`,
		`translation`,
		`interpreter present`,
		`other languages with an interpreter present`,
	}

	d := InterpreterFlagDetector{Patterns: make([]*regexp.Regexp, len(patterns))}
	for i, p := range patterns {
		d.Patterns[i] = regexp.MustCompile(`(?i)` + p)
	}

	return d
}

// UsesInterpreters runs over the raw, unparsed language cell.
func (d InterpreterFlagDetector) UsesInterpreters(raw string) bool {
	s := strings.ToLower(raw)
	for _, p := range d.Patterns {
		if p.MatchString(s) {
			return true
		}
	}

	return false
}
