// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"testing"

	"github.com/genetics-map/genmap/directory"
	"github.com/stretchr/testify/assert"
)

func TestNewPhoneBook(t *testing.T) {
	book := NewPhoneBook([]*directory.Provider{
		{Email: " Ana@Example.com ", PhoneWork: "+34 600 000 000"},
		{Email: "bo@example.com", PhoneWork: "#ERROR!"},
		{Email: "", PhoneWork: "555 0100"},
		{Email: "cy@example.com"},
		{Email: "di@example.com", PhoneWork: "-28296443"},
		{Email: "ed@example.com", PhoneWork: "ext 12"},
		{Email: "fay@example.com", PhoneWork: "+1 (212) 555-0100"},
	})

	assert.Equal(t, PhoneBook{
		"ana@example.com": "+34 600 000 000",
		"fay@example.com": "+1 (212) 555-0100",
	}, book)
}

func TestPromote(t *testing.T) {
	book := PhoneBook{"ana@example.com": "+34 600 000 000"}

	providers := []*directory.Provider{
		{NameFirst: "dr jane", NameLast: "doe", Email: "Ana@example.com", PhoneWork: "#ERROR!"},
		{NameFirst: "nan", NameLast: "x", Email: "bo@example.com", PhoneWork: "-28296443"},
		{NameFirst: "Li", NameLast: "Wei", PhoneWork: "555 0100"},
	}

	stats := Promote(providers, book)

	assert.Equal(t, PromoteStats{Anonymous: 1, PhonesRecovered: 1, PhonesDropped: 1}, stats)

	assert.Equal(t, "Dr. Jane", providers[0].NameFirst)
	assert.Equal(t, "Doe", providers[0].NameLast)
	assert.Equal(t, "'+34 600 000 000", providers[0].PhoneWork)

	assert.Equal(t, AnonymousName, providers[1].NameFirst)
	assert.Empty(t, providers[1].NameLast)
	assert.Empty(t, providers[1].PhoneWork)

	assert.Equal(t, "555 0100", providers[2].PhoneWork)
}
