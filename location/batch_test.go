// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"testing"
	"time"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/geocode"
	"github.com/genetics-map/genmap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligible(t *testing.T) {
	located := &spatial.Point{Lat: 1, Lng: 2}

	tests := []struct {
		name     string
		p        directory.Provider
		backfill bool
		want     bool
	}{
		{"missing coordinates", directory.Provider{WorkAddress: "1 Main St"}, false, true},
		{"already located", directory.Provider{WorkAddress: "1 Main St", Point: located}, false, false},
		{"backfill located", directory.Provider{WorkInstitution: "Clinic", Point: located}, true, true},
		{"nothing to query", directory.Provider{}, true, false},
		{"blank fields", directory.Provider{WorkInstitution: " ", WorkAddress: "  "}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Eligible(&tt.p, tt.backfill))
		})
	}
}

func TestBatchRun(t *testing.T) {
	g := &fakeGeocoder{forward: map[string]*geocode.Result{
		"Clinic, 5 Rue X, Lyon": {
			Point: &spatial.Point{Lat: 45.76, Lng: 4.83},
			Components: []geocode.AddressComponent{
				comp("Lyon", geocode.TypeLocality),
				comp("France", geocode.TypeCountry),
			},
		},
	}}
	r, sleeps := newTestResolver(g)

	providers := []*directory.Provider{
		{NameFirst: "todo", WorkInstitution: "Clinic", WorkAddress: "5 Rue X, Lyon", City: "stale"},
		{NameFirst: "done", WorkAddress: "elsewhere", Point: &spatial.Point{Lat: 40.7, Lng: -74}, City: "NY"},
		{NameFirst: "unresolvable", WorkAddress: "???", City: "old", Country: "old"},
		{NameFirst: "empty"},
	}

	var resolved []string

	b := &Batch{
		Resolver:   r,
		RowDelay:   250 * time.Millisecond,
		OnResolved: func(p *directory.Provider, _ Location) { resolved = append(resolved, p.NameFirst) },
	}

	stats, err := b.Run(context.Background(), providers)
	require.NoError(t, err)

	assert.Equal(t, Stats{Eligible: 2, Processed: 2, Located: 1, Canonical: 1}, stats)
	assert.Equal(t, []string{"todo", "unresolvable"}, resolved)

	assert.Equal(t, "Lyon", providers[0].City)
	assert.Equal(t, "France", providers[0].Country)
	assert.Equal(t, "New York City", providers[1].City, "untouched rows are still canonicalized")

	// a resolution that found nothing clears the previous values
	assert.Nil(t, providers[2].Point)
	assert.Empty(t, providers[2].City)
	assert.Empty(t, providers[2].Country)

	// one attempt delay for "???" and one row delay between the two providers
	assert.Equal(t, []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}, *sleeps)
}

func TestBatchRunCancelled(t *testing.T) {
	g := &fakeGeocoder{}
	r, _ := newTestResolver(g)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	providers := []*directory.Provider{{WorkAddress: "1 Main St", City: "keep"}}

	stats, err := (&Batch{Resolver: r}).Run(ctx, providers)
	require.NoError(t, err)

	assert.True(t, stats.Interrupted)
	assert.Zero(t, stats.Processed)
	assert.Empty(t, g.queries)
	assert.Equal(t, "keep", providers[0].City)
}

func TestBatchRunRequiresResolver(t *testing.T) {
	_, err := (&Batch{}).Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoGeocoder)
}
