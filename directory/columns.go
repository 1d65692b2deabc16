// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"strings"

	"github.com/genetics-map/genmap/spatial"
)

// Column names as they appear in the sheet header.
const (
	ColNameFirst        = "name_first"
	ColNameLast         = "name_last"
	ColEmail            = "email"
	ColPhoneWork        = "phone_work"
	ColWorkWebsite      = "work_website"
	ColWorkInstitution  = "work_institution"
	ColWorkAddress      = "work_address"
	ColLanguageSpoken   = "language_spoken"
	ColUsesInterpreters = "uses_interpreters"
	ColSpecialties      = "specialties"
	ColLatitude         = "Latitude"
	ColLongitude        = "Longitude"
	ColCity             = "City"
	ColCountry          = "Country"
	ColCredentialLink   = "credential_link"
)

// Headers is the canonical sheet layout.
var Headers = []string{
	ColNameFirst, ColNameLast, ColEmail, ColPhoneWork, ColWorkWebsite,
	ColWorkInstitution, ColWorkAddress, ColLanguageSpoken, ColUsesInterpreters,
	ColSpecialties, ColLatitude, ColLongitude, ColCity, ColCountry, ColCredentialLink,
}

// PrivateColumns never leave the admin sheet.
var PrivateColumns = map[string]bool{ColCredentialLink: true}

// PublicHeaders is Headers without the private columns.
func PublicHeaders() []string {
	out := make([]string, 0, len(Headers))

	for _, h := range Headers {
		if !PrivateColumns[h] {
			out = append(out, h)
		}
	}

	return out
}

// Columns maps column names to their position in a particular sheet. It is
// built once from the header row so no other code indexes rows by number.
type Columns map[string]int

// NewColumns indexes header case-insensitively. Canonical columns missing from
// the header keep their canonical position when that position is free, which
// lets header-less or truncated sheets still decode.
func NewColumns(header []string) Columns {
	cols := make(Columns, len(Headers))
	taken := make(map[int]bool)

	for i, h := range header {
		for _, name := range Headers {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				if _, dup := cols[name]; !dup {
					cols[name] = i
					taken[i] = true
				}
			}
		}
	}

	for i, name := range Headers {
		if _, ok := cols[name]; !ok && !taken[i] && i >= len(header) {
			cols[name] = i
		}
	}

	return cols
}

// Index returns the position of name, or -1.
func (c Columns) Index(name string) int {
	if i, ok := c[name]; ok {
		return i
	}

	return -1
}

// Width is the number of cells a row needs to hold every known column.
func (c Columns) Width() int {
	w := 0
	for _, i := range c {
		if i+1 > w {
			w = i + 1
		}
	}

	return w
}

// Decode reads a row into a Provider.
func (c Columns) Decode(row []string) *Provider {
	p := &Provider{
		NameFirst:        rawCell(row, c.Index(ColNameFirst)),
		NameLast:         rawCell(row, c.Index(ColNameLast)),
		Email:            rawCell(row, c.Index(ColEmail)),
		PhoneWork:        rawCell(row, c.Index(ColPhoneWork)),
		WorkWebsite:      rawCell(row, c.Index(ColWorkWebsite)),
		WorkInstitution:  rawCell(row, c.Index(ColWorkInstitution)),
		WorkAddress:      rawCell(row, c.Index(ColWorkAddress)),
		LanguageSpoken:   splitLanguages(rawCell(row, c.Index(ColLanguageSpoken))),
		UsesInterpreters: parseBool(cell(row, c.Index(ColUsesInterpreters))),
		Specialties:      rawCell(row, c.Index(ColSpecialties)),
		City:             cell(row, c.Index(ColCity)),
		Country:          cell(row, c.Index(ColCountry)),
		CredentialLink:   cell(row, c.Index(ColCredentialLink)),
	}

	p.Point = spatial.ParsePoint(cell(row, c.Index(ColLatitude)), cell(row, c.Index(ColLongitude)))

	return p
}

// Encode writes p into row, growing it as needed. Cells of columns this
// package does not know about are left as they were.
func (c Columns) Encode(p *Provider, row []string) []string {
	if w := c.Width(); len(row) < w {
		row = append(row, make([]string, w-len(row))...)
	}

	set := func(name, v string) {
		if i := c.Index(name); i >= 0 {
			row[i] = v
		}
	}

	set(ColNameFirst, p.NameFirst)
	set(ColNameLast, p.NameLast)
	set(ColEmail, p.Email)
	set(ColPhoneWork, p.PhoneWork)
	set(ColWorkWebsite, p.WorkWebsite)
	set(ColWorkInstitution, p.WorkInstitution)
	set(ColWorkAddress, p.WorkAddress)
	set(ColLanguageSpoken, p.Languages())
	set(ColUsesInterpreters, formatBool(p.UsesInterpreters))
	set(ColSpecialties, p.Specialties)
	set(ColCity, p.City)
	set(ColCountry, p.Country)
	set(ColCredentialLink, p.CredentialLink)

	if p.Point != nil {
		set(ColLatitude, formatCoord(p.Point.Lat))
		set(ColLongitude, formatCoord(p.Point.Lng))
	} else {
		set(ColLatitude, "")
		set(ColLongitude, "")
	}

	return row
}
