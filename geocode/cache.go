// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/genetics-map/genmap/spatial"
	"github.com/genetics-map/genmap/utils/textutil"
)

// CachingGeocoder remembers successful forward lookups in duckdb so repeated
// runs do not pay for identical queries. Reverse lookups are not cached.
type CachingGeocoder struct {
	next Geocoder
	db   *sql.DB
	ttl  time.Duration
	now  func() time.Time

	Hits   int
	Misses int
}

// NewCachingGeocoder wraps next. A zero ttl keeps entries forever.
func NewCachingGeocoder(next Geocoder, db *sql.DB, ttl time.Duration) *CachingGeocoder {
	return &CachingGeocoder{next: next, db: db, ttl: ttl, now: time.Now}
}

// CreateSchema creates the cache table.
func (c *CachingGeocoder) CreateSchema() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS geocode_cache (
			query VARCHAR PRIMARY KEY,
			payload VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
	`)

	return err
}

func cacheKey(query string) string {
	return strings.ToLower(textutil.CollapseSpaces(query))
}

func (c *CachingGeocoder) lookup(key string) (*Result, bool) {
	var (
		payload   string
		createdAt time.Time
	)

	err := c.db.QueryRow(`SELECT payload, created_at FROM geocode_cache WHERE query = ?`, key).Scan(&payload, &createdAt)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("⚠️  geocode cache read failed: %v", err)
		}

		return nil, false
	}

	if c.ttl > 0 && c.now().Sub(createdAt) > c.ttl {
		return nil, false
	}

	var r Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		log.Printf("⚠️  geocode cache entry for %q is corrupt: %v", key, err)

		return nil, false
	}

	return &r, true
}

func (c *CachingGeocoder) store(key string, r *Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO geocode_cache (query, payload, created_at) VALUES (?, ?, ?)
		ON CONFLICT (query) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at
	`, key, string(payload), c.now().UTC())
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}

	return nil
}

// Geocode implements Geocoder.
func (c *CachingGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	key := cacheKey(query)
	if r, ok := c.lookup(key); ok {
		c.Hits++

		return r, nil
	}

	c.Misses++

	r, err := c.next.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := c.store(key, r); err != nil {
		log.Printf("⚠️  %v", err)
	}

	return r, nil
}

// Reverse implements Geocoder.
func (c *CachingGeocoder) Reverse(ctx context.Context, p spatial.Point, language string) (*Result, error) {
	return c.next.Reverse(ctx, p, language)
}

// Purge deletes every cached entry and returns how many were removed.
func (c *CachingGeocoder) Purge() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM geocode_cache`)
	if err != nil {
		return 0, fmt.Errorf("purging geocode cache: %w", err)
	}

	return res.RowsAffected()
}
