// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"github.com/genetics-map/genmap/directory"
)

// Cleaner bundles the field cleaners run over every record.
type Cleaner struct {
	Email        *EmailSanitizer
	Website      WebsiteConfig
	Languages    LanguageConfig
	Interpreters InterpreterFlagDetector
	CityAliases  Aliases
}

// NewCleaner returns a cleaner with the default configuration.
func NewCleaner() *Cleaner {
	return &Cleaner{
		Email:        NewEmailSanitizer(),
		Website:      DefaultWebsiteConfig(),
		Languages:    DefaultLanguageConfig(),
		Interpreters: DefaultInterpreterFlagDetector(),
		CityAliases:  DefaultCityAliases(),
	}
}

// Clean normalizes p in place. Fields without a cleaner (specialties,
// coordinates, credential link) are left untouched.
func (c *Cleaner) Clean(p *directory.Provider) {
	p.Email = c.Email.Sanitize(p.Email)
	p.NameFirst = CleanFirstName(p.NameFirst)
	p.NameLast = CleanText(p.NameLast)
	p.WorkInstitution = CleanText(p.WorkInstitution)
	p.WorkAddress = CleanAddress(p.WorkAddress)
	p.Country = CleanCountry(p.Country)
	p.City = CleanCity(p.City, c.CityAliases)
	p.WorkWebsite = c.Website.Normalize(p.WorkWebsite)
	p.PhoneWork = CleanPhone(p.PhoneWork)

	// The flag is sticky: once the raw text is parsed the interpreter phrases
	// are gone, so a second pass must not reset it.
	raw := p.Languages()
	p.UsesInterpreters = p.UsesInterpreters || c.Interpreters.UsesInterpreters(raw)
	p.LanguageSpoken = c.Languages.ParseLanguages(raw)
}

// CleanAll runs Clean over every provider and returns how many were handled.
func (c *Cleaner) CleanAll(providers []*directory.Provider) int {
	for _, p := range providers {
		c.Clean(p)
	}

	return len(providers)
}
