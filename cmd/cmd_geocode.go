// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/geocode"
	"github.com/genetics-map/genmap/location"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type geocodeCmdOptions struct {
	geocode.Options

	Backfill      bool
	FixCitiesOnly bool
	RowDelay      time.Duration
	AttemptDelay  time.Duration
	Cache         bool
	CacheTTL      time.Duration
	PurgeCache    bool
	ProjectID     string
}

var geocodeOptions = &geocodeCmdOptions{}

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Resolve coordinates, city and country for the Working Copy",
	Long: `Geocodes Working Copy rows that have an institution or address but no
coordinates, then canonicalizes the city of every row. With
--backfill-all-records every row is resolved again; with --fix-cities-only no
geocoding happens at all.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg := location.DefaultConfig()
		cfg.AttemptDelay = geocodeOptions.AttemptDelay

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		if !geocodeOptions.FixCitiesOnly {
			geocodeOptions.APIKey, err = geocode.LoadAPIKey(ctx, geocode.KeyOptions{
				CredentialsDir: directoryOptions.CredentialsDir,
				ProjectID:      geocodeOptions.ProjectID,
			})
			if err != nil {
				return err
			}
		}

		log.Printf("Reading %s...", directory.WorkingCopy)

		tbl, err := store.Read(ctx, directory.WorkingCopy)
		if err != nil {
			return err
		}

		providers := tbl.Providers()
		if len(providers) == 0 {
			log.Printf("No data rows in %s.", directory.WorkingCopy)

			return nil
		}

		if geocodeOptions.FixCitiesOnly {
			log.Printf("Applying city alias lookup and metro fallback...")

			changed := location.Canonicalize(cfg, providers)
			tbl.SetProviders(providers)

			if err := writeTab(ctx, store, directory.WorkingCopy, tbl); err != nil {
				return err
			}

			log.Printf("✅ Fixed %d city values.", changed)

			return nil
		}

		g, closeGeocoder, err := newGeocoder()
		if err != nil {
			return err
		}
		defer closeGeocoder()

		todo := 0
		for _, p := range providers {
			if location.Eligible(p, geocodeOptions.Backfill) {
				todo++
			}
		}

		if todo == 0 {
			log.Printf("No rows need geocoding. (All have coordinates; use --backfill-all-records to re-run.)")

			return nil
		}

		mode := "fill missing only"
		if geocodeOptions.Backfill {
			mode = "backfill (all records)"
		}

		log.Printf("Geocoding %d rows [%s]...", todo, mode)

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(todo,
				progressbar.OptionSetDescription("Geocoding"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		batch := &location.Batch{
			Resolver: location.NewResolver(g, cfg),
			Backfill: geocodeOptions.Backfill,
			RowDelay: geocodeOptions.RowDelay,
			OnResolved: func(p *directory.Provider, loc location.Location) {
				if bar == nil {
					log.Printf("%s %s → %s %s, %s", p.NameFirst, p.NameLast, loc.Point, loc.City, loc.Country)

					return
				}

				if err := bar.Add(1); err != nil {
					log.Printf("updating progress bar: %v", err)
				}
			},
		}

		stats, err := batch.Run(ctx, providers)
		if err != nil {
			return err
		}

		if stats.Interrupted {
			return errors.New("🛑 interrupted, nothing was written")
		}

		if c, ok := g.(*geocode.CachingGeocoder); ok {
			log.Printf("Geocode cache: %d hits, %d misses", c.Hits, c.Misses)
		}

		tbl.SetProviders(providers)

		if err := writeTab(ctx, store, directory.WorkingCopy, tbl); err != nil {
			return err
		}

		log.Printf("✅ Geocoded %d rows (%d located), fixed %d city values.", stats.Processed, stats.Located, stats.Canonical)

		return nil
	},
}

// newGeocoder builds the Google client, wrapped in the duckdb cache when enabled.
func newGeocoder() (geocode.Geocoder, func(), error) {
	geocodeOptions.UserAgent = fmt.Sprintf("genmap/%s", Version)

	google, err := geocode.NewGoogleMapsGeocoder(&geocodeOptions.Options)
	if err != nil {
		return nil, nil, err
	}

	if !geocodeOptions.Cache {
		return google, func() {}, nil
	}

	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	cache := geocode.NewCachingGeocoder(google, db, geocodeOptions.CacheTTL)
	if err := cache.CreateSchema(); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("creating geocode cache schema: %w", err)
	}

	if geocodeOptions.PurgeCache {
		n, err := cache.Purge()
		if err != nil {
			db.Close()

			return nil, nil, err
		}

		log.Printf("Purged %d cached geocode responses.", n)
	}

	return cache, func() { db.Close() }, nil
}

func init() {
	rootCmd.AddCommand(geocodeCmd)

	flags := geocodeCmd.Flags()
	flags.BoolVar(
		&geocodeOptions.Backfill,
		"backfill-all-records",
		false,
		"Re-run geocoding on every record, overwriting existing coordinates",
	)
	flags.BoolVar(
		&geocodeOptions.FixCitiesOnly,
		"fix-cities-only",
		false,
		"Only apply city aliases and the metro fallback. No geocoding",
	)
	flags.DurationVar(
		&geocodeOptions.RowDelay,
		"row-delay",
		250*time.Millisecond,
		"Pause between two rows",
	)
	flags.DurationVar(
		&geocodeOptions.AttemptDelay,
		"attempt-delay",
		500*time.Millisecond,
		"Pause between two query attempts of the same row",
	)
	flags.Float64Var(
		&geocodeOptions.QPS,
		"qps",
		0,
		"Cap on geocoding requests per second, 0 for no cap",
	)
	flags.BoolVar(
		&geocodeOptions.Cache,
		"cache",
		true,
		"Cache forward geocoding responses in the local database",
	)
	flags.BoolVar(
		&geocodeOptions.PurgeCache,
		"purge-cache",
		false,
		"Drop every cached response before geocoding",
	)
	flags.DurationVar(
		&geocodeOptions.CacheTTL,
		"cache-ttl",
		0,
		"Maximum age of a cached response, 0 keeps them forever",
	)
	flags.StringVar(
		&geocodeOptions.ProjectID,
		"project",
		"",
		"GCP project for the API key lookup through Application Default Credentials",
	)
	flags.StringVar(
		&geocodeOptions.Language,
		"language",
		"en",
		"Language of the names returned by the geocoder",
	)
	flags.BoolVar(
		&geocodeOptions.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses, with the API key redacted",
	)
	flags.BoolVar(
		&geocodeOptions.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
