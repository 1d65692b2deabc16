// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"strconv"
	"strings"

	"github.com/genetics-map/genmap/spatial"
	"github.com/genetics-map/genmap/utils/textutil"
)

// Provider is one entry of the directory. Optional text fields use "" for absent.
type Provider struct {
	NameFirst        string
	NameLast         string
	Email            string
	PhoneWork        string
	WorkWebsite      string
	WorkInstitution  string
	WorkAddress      string
	LanguageSpoken   []string
	UsesInterpreters bool
	Specialties      string
	Point            *spatial.Point // nil unless both coordinates are known
	City             string
	Country          string

	// CredentialLink is admin only and is never part of a public projection.
	CredentialLink string
}

// HasLocation reports whether the provider carries coordinates.
func (p *Provider) HasLocation() bool {
	return p.Point != nil
}

// Languages renders LanguageSpoken as stored in the sheet.
func (p *Provider) Languages() string {
	return strings.Join(p.LanguageSpoken, ", ")
}

// splitLanguages reads a language cell. Splitting on commas and joining with
// ", " round trips both cleaned lists and raw free text.
func splitLanguages(cell string) []string {
	var out []string

	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

func parseBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "y", "1":
		return true
	}

	return false
}

func formatBool(b bool) string {
	if b {
		return "TRUE"
	}

	return "FALSE"
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// cell returns a trimmed value, treating placeholder text such as "nan" as empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	v := strings.TrimSpace(row[idx])
	if textutil.IsPlaceholder(v) {
		return ""
	}

	return v
}

// rawCell returns the value untouched, so cleaners see line breaks and spacing.
func rawCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	if textutil.IsPlaceholder(row[idx]) {
		return ""
	}

	return row[idx]
}
