// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"strings"

	"github.com/genetics-map/genmap/directory"
)

// PhoneBook maps lowercase emails to the last good phone number on record.
type PhoneBook map[string]string

// NewPhoneBook indexes providers that have both an email and an intact phone.
// Corrupted cells and values without a plausible digit count are skipped.
func NewPhoneBook(providers []*directory.Provider) PhoneBook {
	book := make(PhoneBook)

	for _, p := range providers {
		email := strings.ToLower(strings.TrimSpace(p.Email))
		phone := strings.TrimSpace(p.PhoneWork)

		if email != "" && !IsCorruptedPhone(phone) && LooksLikePhone(phone) {
			book[email] = phone
		}
	}

	return book
}

// PromoteStats counts what Promote changed.
type PromoteStats struct {
	Anonymous       int
	PhonesRecovered int
	PhonesDropped   int
}

// Promote prepares Working Copy providers for publication: names are
// cleaned up, phones broken by formula evaluation are recovered from book,
// and phones are protected against formula interpretation.
func Promote(providers []*directory.Provider, book PhoneBook) PromoteStats {
	var stats PromoteStats

	for _, p := range providers {
		p.NameFirst, p.NameLast = CleanFullName(p.NameFirst, p.NameLast)
		if p.NameFirst == AnonymousName {
			stats.Anonymous++
		}

		phone := strings.TrimSpace(p.PhoneWork)
		if IsCorruptedPhone(phone) {
			phone = book[strings.ToLower(strings.TrimSpace(p.Email))]
			if phone != "" {
				stats.PhonesRecovered++
			} else {
				stats.PhonesDropped++
			}
		}

		p.PhoneWork = SanitizeForSheets(phone)
	}

	return stats
}
