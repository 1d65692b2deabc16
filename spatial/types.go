// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial holds coordinates, bounds and the H3 clustering used by
// the public map.
package spatial

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadius = 6371e3 // meters

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// LatLngString formats the point the way the geocoding API expects it in a latlng parameter.
func (p Point) LatLngString() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// ParsePoint parses a pair of coordinate cells. It returns nil unless both
// values are present and numeric, so a point is never half populated.
func ParsePoint(lat, lng string) *Point {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" || lng == "" {
		return nil
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil
	}

	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil
	}

	p := &Point{Lat: la, Lng: ln}
	if p.Validate() != nil {
		return nil
	}

	return p
}

// Validate checks that the coordinates are finite and on the globe.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return fmt.Errorf("coordinates must be finite (got %v, %v)", p.Lat, p.Lng)
	}

	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 (got %f)", p.Lat)
	}

	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 (got %f)", p.Lng)
	}

	return nil
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Bounds is a latitude/longitude rectangle, inclusive on every edge.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Contains reports whether p falls inside the rectangle. A nil point is never contained.
func (b Bounds) Contains(p *Point) bool {
	if p == nil {
		return false
	}

	return b.MinLat <= p.Lat && p.Lat <= b.MaxLat && b.MinLng <= p.Lng && p.Lng <= b.MaxLng
}
