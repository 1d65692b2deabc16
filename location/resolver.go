// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package location

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/genetics-map/genmap/geocode"
	"github.com/genetics-map/genmap/spatial"
	"github.com/genetics-map/genmap/utils/textutil"
)

// ErrNoGeocoder is returned when a Resolver is used without a geocoder.
var ErrNoGeocoder = errors.New("location: resolver has no geocoder")

// Location is the outcome of resolving one record. Any field may be empty.
type Location struct {
	Point   *spatial.Point
	City    string
	Country string
}

// Complete reports whether coordinates, city and country are all set.
func (l Location) Complete() bool {
	return l.Point != nil && l.City != "" && l.Country != ""
}

// Candidate is one scored query attempt.
type Candidate struct {
	Query string
	Location
	Score float64
}

// SleepFunc pauses between attempts. It returns early when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration)

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Resolver runs the multi-query geocoding strategy for a single record.
type Resolver struct {
	Geocoder geocode.Geocoder
	Config   *Config
	Sleep    SleepFunc

	// OnCandidate, when set, sees every scored attempt.
	OnCandidate func(Candidate)

	validator *CityValidator
}

// NewResolver creates a resolver. A nil cfg means DefaultConfig.
func NewResolver(g geocode.Geocoder, cfg *Config) *Resolver {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Resolver{
		Geocoder:  g,
		Config:    cfg,
		Sleep:     Sleep,
		validator: NewCityValidator(cfg.RejectTerms),
	}
}

// Validator returns the city validator built from the reject terms.
func (r *Resolver) Validator() *CityValidator {
	if r.validator == nil {
		r.validator = NewCityValidator(r.Config.RejectTerms)
	}

	return r.validator
}

// Queries returns the ordered, de-duplicated attempts for a record.
func Queries(institution, address string) []string {
	institution = strings.TrimSpace(institution)
	address = strings.TrimSpace(address)

	var combined string
	if institution != "" && address != "" {
		combined = institution + ", " + address
	}

	seen := map[string]bool{}

	var out []string

	for _, q := range []string{combined, address, institution} {
		if q == "" || seen[q] {
			continue
		}

		seen[q] = true
		out = append(out, q)
	}

	return out
}

// Resolve geocodes a record. Failed attempts are logged and skipped, so an
// unresolvable address yields an empty Location and a nil error.
func (r *Resolver) Resolve(ctx context.Context, institution, address string) (Location, error) {
	if r.Geocoder == nil {
		return Location{}, ErrNoGeocoder
	}

	address = strings.TrimSpace(address)

	// bonuses only matter when there is more than one attempt to rank
	hasCombined := strings.TrimSpace(institution) != "" && address != ""

	var (
		best      Location
		bestScore float64
	)

	for i, query := range Queries(institution, address) {
		if ctx.Err() != nil {
			break
		}

		res, err := r.Geocoder.Geocode(ctx, query)
		if err != nil {
			if !geocode.IsNotFoundError(err) {
				log.Printf("⚠️  geocoding %q %s: %v", query, failureReason(err), err)
			}
		} else {
			c := r.score(query, res, address, hasCombined && i == 0, hasCombined && i == 1)
			if r.OnCandidate != nil {
				r.OnCandidate(c)
			}

			if c.Score > bestScore {
				best, bestScore = c.Location, c.Score
			}

			if c.Complete() {
				best = c.Location

				break
			}
		}

		if r.Sleep != nil {
			r.Sleep(ctx, r.Config.AttemptDelay)
		}
	}

	return r.repair(ctx, best, address), nil
}

// failureReason names the kind of geocoding failure for log lines.
func failureReason(err error) string {
	switch {
	case geocode.IsQuotaExceededError(err):
		return "hit the quota"
	case geocode.IsRateLimitError(err):
		return "was rate limited"
	case geocode.IsTimeoutError(err):
		return "timed out"
	default:
		return "failed"
	}
}

func (r *Resolver) score(query string, res *geocode.Result, address string, first, addressOnly bool) Candidate {
	c := Candidate{Query: query, Location: r.extract(res)}

	if c.Point != nil {
		c.Score += 2.0
	}

	if c.City != "" {
		c.Score += 1.0
	}

	if c.Country != "" {
		c.Score += 1.0
	}

	switch {
	case first:
		c.Score += 0.5
	case addressOnly:
		c.Score += 0.3
	}

	if c.Point != nil && c.City == "" && address != "" {
		if city := r.Validator().ExtractCity(address); city != "" {
			c.City = city
			c.Score += 1.0
		}
	}

	return c
}

var cityPriority = []struct {
	typ   string
	gated bool
}{
	{geocode.TypeLocality, false},
	{geocode.TypeSublocality, false},
	{geocode.TypeSublocalityLevel1, false},
	{geocode.TypeAdminAreaLevel2, true},
	{geocode.TypeAdminAreaLevel1, true},
}

// extract reads coordinates, city and country from a forward result.
func (r *Resolver) extract(res *geocode.Result) Location {
	loc := Location{Point: res.Point}

	for _, p := range cityPriority {
		for _, comp := range res.Components {
			if !comp.HasType(p.typ) || comp.LongName == "" {
				continue
			}

			if p.gated && !r.Validator().Valid(comp.LongName) {
				continue
			}

			loc.City = comp.LongName

			break
		}

		if loc.City != "" {
			break
		}
	}

	if c, ok := res.Component(geocode.TypeCountry); ok {
		loc.Country = c.LongName
	}

	if loc.City != "" && !r.Validator().Valid(loc.City) {
		loc.City = ""
	}

	return loc
}

func (r *Resolver) repair(ctx context.Context, best Location, address string) Location {
	cfg := r.Config

	if best.Point != nil && best.City == "" && address != "" {
		if city := r.Validator().ExtractCity(address); city != "" {
			best.City = cfg.Aliases.Apply(city)
		}
	}

	if best.City == "" && cfg.MetroCity != "" && cfg.MetroBounds.Contains(best.Point) {
		best.City = cfg.MetroCity
	}

	if best.Point != nil && textutil.HasNonASCII(best.City) {
		best.City = r.englishCity(ctx, *best.Point, best.City)
	}

	if best.City != "" {
		best.City = cfg.Aliases.Apply(best.City)
	}

	return best
}

// reverseCityPriority ranks the components of a reverse result that may
// carry the city name. A sublocality typed as locality is taken by the first
// rule.
var reverseCityPriority = []func(geocode.AddressComponent) bool{
	func(c geocode.AddressComponent) bool { return c.HasType(geocode.TypeLocality) },
	func(c geocode.AddressComponent) bool {
		return c.HasType(geocode.TypeSublocality) && !c.HasType(geocode.TypeLocality)
	},
	func(c geocode.AddressComponent) bool { return c.HasType(geocode.TypeAdminAreaLevel1) },
}

// englishCity asks for an English rendering of the place at p. Any failure
// keeps city as it was.
func (r *Resolver) englishCity(ctx context.Context, p spatial.Point, city string) string {
	res, err := r.Geocoder.Reverse(ctx, p, "en")
	if err != nil {
		log.Printf("⚠️  reverse geocoding %s for %q failed: %v", p, city, err)

		return city
	}

	for _, match := range reverseCityPriority {
		for _, comp := range res.Components {
			if match(comp) && comp.LongName != "" {
				return comp.LongName
			}
		}
	}

	return city
}
