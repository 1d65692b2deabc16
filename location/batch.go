// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"strings"
	"time"

	"github.com/genetics-map/genmap/directory"
)

// Eligible reports whether p should be sent to the resolver. Providers with
// neither institution nor address are never eligible.
func Eligible(p *directory.Provider, backfill bool) bool {
	if strings.TrimSpace(p.WorkInstitution) == "" && strings.TrimSpace(p.WorkAddress) == "" {
		return false
	}

	return backfill || !p.HasLocation()
}

// Stats summarizes a batch run.
type Stats struct {
	Eligible    int
	Processed   int
	Located     int
	Canonical   int
	Interrupted bool
}

// Batch resolves a set of providers one at a time and finishes with a
// canonicalization pass over all of them.
type Batch struct {
	Resolver *Resolver

	// Backfill re-resolves providers that already have coordinates.
	Backfill bool

	// RowDelay is the pause between two providers.
	RowDelay time.Duration

	// OnResolved is called after each provider is resolved.
	OnResolved func(p *directory.Provider, loc Location)
}

// Run mutates providers in place. A cancelled ctx stops resolution early but
// still canonicalizes, so callers decide whether a partial run is persisted.
func (b *Batch) Run(ctx context.Context, providers []*directory.Provider) (Stats, error) {
	var stats Stats

	if b.Resolver == nil {
		return stats, ErrNoGeocoder
	}

	var todo []*directory.Provider

	for _, p := range providers {
		if Eligible(p, b.Backfill) {
			todo = append(todo, p)
		}
	}

	stats.Eligible = len(todo)

	for i, p := range todo {
		if ctx.Err() != nil {
			stats.Interrupted = true

			break
		}

		loc, err := b.Resolver.Resolve(ctx, p.WorkInstitution, p.WorkAddress)
		if err != nil {
			return stats, err
		}

		// a cancelled resolution is partial, do not let it clobber stored values
		if ctx.Err() != nil {
			stats.Interrupted = true

			break
		}

		p.Point = loc.Point
		p.City = loc.City
		p.Country = loc.Country

		stats.Processed++
		if loc.Point != nil {
			stats.Located++
		}

		if b.OnResolved != nil {
			b.OnResolved(p, loc)
		}

		if i < len(todo)-1 && b.Resolver.Sleep != nil {
			b.Resolver.Sleep(ctx, b.RowDelay)
		}
	}

	stats.Canonical = Canonicalize(b.Resolver.Config, providers)

	return stats, nil
}
