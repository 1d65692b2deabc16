// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"conjunction and semicolon", "Spanish and French; German", []string{"French", "German", "Spanish"}},
		{"dedupe case-insensitive", "english, ENGLISH, Spanish", []string{"English", "Spanish"}},
		{"asides removed", "English (native), Spanish (limited)", []string{"English", "Spanish"}},
		{"prefer not to say", "Prefer not to say", nil},
		{"prefer not to say inside text", "English - prefer not to say more", nil},
		{"boilerplate removed", "English, Spanish, all other languages with interpretation services", []string{"English", "Spanish"}},
		{"with use of", "English with use of Globo for others", []string{"English"}},
		{"we also use interpreters", "English; we also use interpreters", []string{"English"}},
		{"limited phrase", "English, limited Spanish", []string{"English"}},
		{"pipes slashes newlines", "English|Hindi/Urdu\nTamil", []string{"English", "Hindi", "Tamil", "Urdu"}},
		{"ampersand", "English & Arabic", []string{"Arabic", "English"}},
		{"leading and", "and Korean", []string{"Korean"}},
		{"trailing ampersand", "Korean &", []string{"Korean"}},
		{"multi word chunks explode", "Sign Language, Mandarin", []string{"Language", "Mandarin", "Sign"}},
		{"stop words dropped", "English, others", []string{"English"}},
		{"punctuation stripped", "Eng.lish, Fr3nch!", []string{"English", "Frnch"}},
		{"accented letters kept", "Français, Español", []string{"Español", "Français"}},
		{"empty", "", nil},
		{"only noise", "translation services", nil},
	}

	cfg := DefaultLanguageConfig()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.ParseLanguages(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLanguages(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFormatLanguages(t *testing.T) {
	cfg := DefaultLanguageConfig()

	assert.Equal(t, "French, German, Spanish", FormatLanguages(cfg.ParseLanguages("Spanish and French; German")))
	assert.Equal(t, "", FormatLanguages(nil))
}

func TestParseLanguagesIsIdempotent(t *testing.T) {
	cfg := DefaultLanguageConfig()

	first := cfg.ParseLanguages("spanish & french; GERMAN, interpreter present")
	second := cfg.ParseLanguages(FormatLanguages(first))

	assert.Equal(t, first, second)
}

func TestLanguageStages(t *testing.T) {
	assert.Equal(t, "English , ", dropAsides("English (US), (other)"))
	assert.Equal(t, "a,b,c,d", unifyDelimiters("a;b|c/d"))
	assert.Equal(t, "a,b", unifyDelimiters("a and b"))
	assert.Equal(t, "a, b", scrub(" ,a.,, b12 ,"))
	assert.Equal(t, []string{"Sign", "Language", "Dutch"}, tokenize("Sign Language,,Dutch"))
	assert.Equal(t, "Ñandu", capitalize("ñANDU"))
	assert.Equal(t, []string{"Arabic", "Zulu"}, dedupeSorted([]string{"zulu", "ARABIC", "Zulu"}))
}

func TestLanguageConfigWithoutBoilerplate(t *testing.T) {
	cfg := LanguageConfig{StopWords: set()}

	assert.Equal(t, []string{"English", "Present", "Translation"}, cfg.ParseLanguages("English, translation present"))
}
