// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"www.Example.com/", "https://www.example.com"},
		{"N/A", ""},
		{"Prefer not to say", ""},
		{"none.", ""},
		{"", ""},
		{"RETIRED", ""},
		{"https://clinic.org/genetics/", "https://clinic.org/genetics"},
		{"http://clinic.org", "http://clinic.org"},
		{"See https://clinic.org/team, thanks", "https://clinic.org/team"},
		{"example.org", "https://example.org"},
		{"example.org/path?id=3", "https://example.org/path?id=3"},
		{"www.first.org; www.second.org", "https://www.first.org"},
		{"n/a; www.second.org", ""},
		{"clinic.org\nother.org", "https://clinic.org"},
		{"ask at the front desk", "ask at the front desk"},
		{"not.a domain", "not.a domain"},
		{"Website coming soon.", "website coming soon"},
	}

	cfg := DefaultWebsiteConfig()

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.Normalize(tt.input))
		})
	}
}

func TestNormalizeWebsiteCustomNonAnswers(t *testing.T) {
	cfg := WebsiteConfig{NonAnswers: set("", "ask me")}

	assert.Equal(t, "", cfg.Normalize("Ask me"))
	assert.Equal(t, "n/a", cfg.Normalize("N/A"))
}

func TestExplicitURLTakesPriority(t *testing.T) {
	u, ok := extractExplicitURL("clinic.org or www.better.org/")
	assert.True(t, ok)
	assert.Equal(t, "https://www.better.org", u)

	_, ok = extractExplicitURL("clinic.org")
	assert.False(t, ok)
}
