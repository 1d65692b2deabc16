// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/spatial"
	"github.com/genetics-map/genmap/utils/textutil"
	"github.com/gin-gonic/gin"
)

// DefaultRadiusKm is used by near= queries without radius_km.
const DefaultRadiusKm = 50.0

// Server serves the public directory to the map front end.
type Server struct {
	entries []Entry
	search  []string // folded text per entry, same order as entries
}

// NewServer indexes providers. The slice is not retained.
func NewServer(providers []*directory.Provider) *Server {
	s := &Server{
		entries: make([]Entry, len(providers)),
		search:  make([]string, len(providers)),
	}

	for i, p := range providers {
		s.entries[i] = NewEntry(i, p)
		s.search[i] = textutil.LowerASCIIFolding(strings.Join([]string{
			p.NameFirst, p.NameLast, p.WorkInstitution, p.City, p.Specialties,
		}, " "))
	}

	return s
}

// Router returns the routes of the public API.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/api/providers", s.listProviders)
	r.GET("/api/clusters", s.listClusters)
	r.GET("/api/facets", s.getFacets)

	return r
}

// Run listens on addr until the server fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

type filter struct {
	query        string
	language     string
	country      string
	interpreters *bool
	near         *spatial.Point
	radiusMeters float64
}

var errBadNear = errors.New("near must be lat,lng")

func parseFilter(ctx *gin.Context) (*filter, error) {
	f := &filter{
		query:    textutil.LowerASCIIFolding(ctx.Query("q")),
		language: strings.TrimSpace(ctx.Query("language")),
		country:  strings.TrimSpace(ctx.Query("country")),
	}

	if v := ctx.Query("interpreters"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("interpreters must be true or false")
		}

		f.interpreters = &b
	}

	if v := ctx.Query("near"); v != "" {
		lat, lng, ok := strings.Cut(v, ",")
		if !ok {
			return nil, errBadNear
		}

		if f.near = spatial.ParsePoint(lat, lng); f.near == nil {
			return nil, errBadNear
		}

		radius := DefaultRadiusKm

		if rv := ctx.Query("radius_km"); rv != "" {
			r, err := strconv.ParseFloat(rv, 64)
			if err != nil || r <= 0 {
				return nil, errors.New("radius_km must be a positive number")
			}

			radius = r
		}

		f.radiusMeters = radius * 1000
	}

	return f, nil
}

func (f *filter) match(e *Entry, folded string) bool {
	if f.query != "" && !strings.Contains(folded, f.query) {
		return false
	}

	if f.country != "" && !strings.EqualFold(e.Country, f.country) {
		return false
	}

	if f.interpreters != nil && e.UsesInterpreters != *f.interpreters {
		return false
	}

	if f.language != "" {
		found := false

		for _, l := range e.LanguageSpoken {
			if strings.EqualFold(l, f.language) {
				found = true

				break
			}
		}

		if !found {
			return false
		}
	}

	if f.near != nil {
		if e.Point == nil || f.near.HaversineDistance(e.Point) > f.radiusMeters {
			return false
		}
	}

	return true
}

func (s *Server) filtered(f *filter) []Entry {
	out := make([]Entry, 0)

	for i := range s.entries {
		if f.match(&s.entries[i], s.search[i]) {
			out = append(out, s.entries[i])
		}
	}

	return out
}

func (s *Server) listProviders(ctx *gin.Context) {
	f, err := parseFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	entries := s.filtered(f)

	ctx.JSON(http.StatusOK, gin.H{
		"providers": entries,
		"total":     len(entries),
	})
}

func (s *Server) listClusters(ctx *gin.Context) {
	f, err := parseFilter(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	res := 4

	if v := ctx.Query("res"); v != "" {
		res, err = strconv.Atoi(v)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid res parameter"})

			return
		}
	}

	var points []spatial.Point

	for _, e := range s.filtered(f) {
		if e.Point != nil {
			points = append(points, *e.Point)
		}
	}

	clusters, err := spatial.ClusterPoints(points, res)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"resolution": res,
		"clusters":   clusters,
	})
}

// Facet is a distinct value and how many entries carry it.
type Facet struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func (s *Server) getFacets(ctx *gin.Context) {
	languages := map[string]int{}
	countries := map[string]int{}
	interpreters := 0

	for _, e := range s.entries {
		for _, l := range e.LanguageSpoken {
			languages[l]++
		}

		if e.Country != "" {
			countries[e.Country]++
		}

		if e.UsesInterpreters {
			interpreters++
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"languages":    facets(languages),
		"countries":    facets(countries),
		"interpreters": interpreters,
		"total":        len(s.entries),
	})
}

// facets sorts by count, then by value.
func facets(m map[string]int) []Facet {
	out := make([]Facet, 0, len(m))
	for v, n := range m {
		out = append(out, Facet{Value: v, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	return out
}
