// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package location turns free-text institutions and addresses into
// coordinates, a validated city, and a country.
package location

import (
	"time"

	"github.com/genetics-map/genmap/normalize"
	"github.com/genetics-map/genmap/spatial"
)

// Config holds the tables the resolver and canonicalizer rely on.
type Config struct {
	// RejectTerms are whole words that disqualify a city candidate.
	RejectTerms []string

	// Aliases rewrite city values to their canonical spelling.
	Aliases normalize.Aliases

	// MetroBounds is the fallback rectangle for records without a city.
	MetroBounds spatial.Bounds

	// MetroCity is assigned to cityless points inside MetroBounds.
	MetroCity string

	// AttemptDelay is the pause after each query attempt of one record.
	AttemptDelay time.Duration
}

// DefaultRejectTerms lists countries, street suffixes, building words,
// compass directions and state abbreviations that are never a city.
func DefaultRejectTerms() []string {
	return []string{
		"usa", "united states", "canada", "uk", "united kingdom", "australia",
		"india", "pakistan", "south africa", "new zealand", "ireland", "germany",
		"france", "spain", "italy", "brazil", "china", "japan", "korea",
		"street", "st", "avenue", "ave", "road", "rd", "drive", "dr",
		"boulevard", "blvd", "lane", "ln", "way", "place", "pl", "court", "ct",
		"hospital", "medical center", "clinic", "center", "centre", "university",
		"college", "school", "institute", "foundation", "building", "tower",
		"box", "po box", "p.o. box", "suite", "unit", "floor", "level",
		"north", "south", "east", "west", "central", "western", "eastern",
		"northern", "southern", "upper", "lower",
		"ny", "ca", "tx", "fl", "il", "pa", "oh", "ga", "nc", "mi",
	}
}

// NewYorkCityBounds roughly covers the five boroughs.
var NewYorkCityBounds = spatial.Bounds{MinLat: 40.5, MaxLat: 40.95, MinLng: -74.25, MaxLng: -73.7}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		RejectTerms:  DefaultRejectTerms(),
		Aliases:      normalize.DefaultCityAliases(),
		MetroBounds:  NewYorkCityBounds,
		MetroCity:    "New York City",
		AttemptDelay: 500 * time.Millisecond,
	}
}
