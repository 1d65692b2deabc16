// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng string
		want     *Point
	}{
		{"valid", "40.7", "-74.0", &Point{Lat: 40.7, Lng: -74.0}},
		{"padded", " 40.7 ", "\t-74.0", &Point{Lat: 40.7, Lng: -74.0}},
		{"missing lat", "", "-74.0", nil},
		{"missing lng", "40.7", "", nil},
		{"not numeric", "north", "-74.0", nil},
		{"nan", "NaN", "1", nil},
		{"infinite", "+Inf", "1", nil},
		{"latitude off the globe", "91", "0", nil},
		{"longitude off the globe", "0", "-180.5", nil},
		{"antimeridian", "-90", "180", &Point{Lat: -90, Lng: 180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePoint(tt.lat, tt.lng))
		})
	}
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Lat: -34.88, Lng: -56.15}.Validate())
	assert.ErrorContains(t, Point{Lat: 95, Lng: 0}.Validate(), "latitude")
	assert.ErrorContains(t, Point{Lat: 0, Lng: 200}.Validate(), "longitude")
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{MinLat: 40.5, MaxLat: 40.95, MinLng: -74.25, MaxLng: -73.7}

	assert.True(t, b.Contains(&Point{Lat: 40.7128, Lng: -74.006}))
	assert.True(t, b.Contains(&Point{Lat: 40.5, Lng: -73.7}), "edges are inclusive")
	assert.False(t, b.Contains(&Point{Lat: 41.0, Lng: -74.0}))
	assert.False(t, b.Contains(&Point{Lat: 40.7, Lng: -73.0}))
	assert.False(t, b.Contains(nil))
}

func TestHaversineDistance(t *testing.T) {
	a := &Point{Lat: 40.7128, Lng: -74.0060}
	b := &Point{Lat: 40.7128, Lng: -74.0060}
	assert.InDelta(t, 0, a.HaversineDistance(b), 0.001)

	// Manhattan to Brooklyn, roughly 6.5 km.
	c := &Point{Lat: 40.6782, Lng: -73.9442}
	assert.InDelta(t, 6400, a.HaversineDistance(c), 1500)
}

func TestLatLngString(t *testing.T) {
	assert.Equal(t, "40.5,-74.25", Point{Lat: 40.5, Lng: -74.25}.LatLngString())
}

func TestClusterPoints(t *testing.T) {
	points := []Point{
		{Lat: 40.7128, Lng: -74.0060},
		{Lat: 40.7129, Lng: -74.0061},
		{Lat: 51.5074, Lng: -0.1278},
	}

	clusters, err := ClusterPoints(points, 5)
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	assert.Equal(t, 2, clusters[0].Count)
	assert.InDelta(t, 40.71285, clusters[0].Center.Lat, 1e-9)
	assert.Equal(t, 1, clusters[1].Count)
	assert.NotEmpty(t, clusters[0].Cell)

	_, err = ClusterPoints(points, MaxResolution+1)
	assert.Error(t, err)
}
