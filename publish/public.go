// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package publish exposes the public projection of the directory, as a CSV
// file and as a JSON API for the map.
package publish

import (
	"strconv"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/spatial"
)

// Entry is a provider as served to map clients. It has no credential field.
type Entry struct {
	ID               int            `json:"id"`
	NameFirst        string         `json:"name_first"`
	NameLast         string         `json:"name_last"`
	Email            string         `json:"email,omitempty"`
	PhoneWork        string         `json:"phone_work,omitempty"`
	WorkWebsite      string         `json:"work_website,omitempty"`
	WorkInstitution  string         `json:"work_institution,omitempty"`
	WorkAddress      string         `json:"work_address,omitempty"`
	LanguageSpoken   []string       `json:"language_spoken"`
	UsesInterpreters bool           `json:"uses_interpreters"`
	Specialties      string         `json:"specialties,omitempty"`
	Point            *spatial.Point `json:"point,omitempty"`
	City             string         `json:"city,omitempty"`
	Country          string         `json:"country,omitempty"`
}

// NewEntry projects p. id is its position in the published list.
func NewEntry(id int, p *directory.Provider) Entry {
	langs := p.LanguageSpoken
	if langs == nil {
		langs = []string{}
	}

	return Entry{
		ID:               id,
		NameFirst:        p.NameFirst,
		NameLast:         p.NameLast,
		Email:            p.Email,
		PhoneWork:        p.PhoneWork,
		WorkWebsite:      p.WorkWebsite,
		WorkInstitution:  p.WorkInstitution,
		WorkAddress:      p.WorkAddress,
		LanguageSpoken:   langs,
		UsesInterpreters: p.UsesInterpreters,
		Specialties:      p.Specialties,
		Point:            p.Point,
		City:             p.City,
		Country:          p.Country,
	}
}

// Record is one CSV line of the public export, in sheet column order.
type Record struct {
	NameFirst        string `csv:"name_first"`
	NameLast         string `csv:"name_last"`
	Email            string `csv:"email"`
	PhoneWork        string `csv:"phone_work"`
	WorkWebsite      string `csv:"work_website"`
	WorkInstitution  string `csv:"work_institution"`
	WorkAddress      string `csv:"work_address"`
	LanguageSpoken   string `csv:"language_spoken"`
	UsesInterpreters string `csv:"uses_interpreters"`
	Specialties      string `csv:"specialties"`
	Latitude         string `csv:"Latitude"`
	Longitude        string `csv:"Longitude"`
	City             string `csv:"City"`
	Country          string `csv:"Country"`
}

// NewRecord projects p the way the sheet stores it.
func NewRecord(p *directory.Provider) Record {
	r := Record{
		NameFirst:        p.NameFirst,
		NameLast:         p.NameLast,
		Email:            p.Email,
		PhoneWork:        p.PhoneWork,
		WorkWebsite:      p.WorkWebsite,
		WorkInstitution:  p.WorkInstitution,
		WorkAddress:      p.WorkAddress,
		LanguageSpoken:   p.Languages(),
		UsesInterpreters: "FALSE",
		Specialties:      p.Specialties,
		City:             p.City,
		Country:          p.Country,
	}

	if p.UsesInterpreters {
		r.UsesInterpreters = "TRUE"
	}

	if p.Point != nil {
		r.Latitude = strconv.FormatFloat(p.Point.Lat, 'f', -1, 64)
		r.Longitude = strconv.FormatFloat(p.Point.Lng, 'f', -1, 64)
	}

	return r
}
