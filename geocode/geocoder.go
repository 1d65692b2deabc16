// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode talks to the forward and reverse geocoding service.
package geocode

import (
	"context"

	"github.com/genetics-map/genmap/spatial"
)

// Address component type tags used by the resolver.
const (
	TypeLocality          = "locality"
	TypeSublocality       = "sublocality"
	TypeSublocalityLevel1 = "sublocality_level_1"
	TypeAdminAreaLevel1   = "administrative_area_level_1"
	TypeAdminAreaLevel2   = "administrative_area_level_2"
	TypeCountry           = "country"
)

// AddressComponent is one typed part of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// HasType reports whether the component is tagged with t.
func (c AddressComponent) HasType(t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}

	return false
}

// Result is the first match returned by the service.
type Result struct {
	Point            *spatial.Point     `json:"point,omitempty"`
	Components       []AddressComponent `json:"address_components"`
	FormattedAddress string             `json:"formatted_address"`
	LocationType     string             `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
}

// Component returns the first component tagged with t.
func (r *Result) Component(t string) (AddressComponent, bool) {
	if r == nil {
		return AddressComponent{}, false
	}

	for _, c := range r.Components {
		if c.HasType(t) {
			return c, true
		}
	}

	return AddressComponent{}, false
}

// Geocoder interface for different geocoding providers. A nil result with a
// nil error is never returned: "nothing found" is reported as an error.
type Geocoder interface {
	// Geocode resolves a free text query.
	Geocode(ctx context.Context, query string) (*Result, error)

	// Reverse resolves a coordinate pair, asking for names in language.
	Reverse(ctx context.Context, p spatial.Point, language string) (*Result, error)
}
