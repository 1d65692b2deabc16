// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/genetics-map/genmap/directory"
	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})

	rootCmd.PersistentFlags().StringVar(
		&directoryOptions.CredentialsDir,
		"credentials-dir",
		directory.DefaultCredentialsDir,
		"Directory with the service account key, sheet id and geocoding key files",
	)
	rootCmd.PersistentFlags().StringVar(
		&directoryOptions.SpreadsheetID,
		"sheet-id",
		"",
		"Spreadsheet id, overrides "+directory.EnvSheetID+" and the sheet id file",
	)
	rootCmd.PersistentFlags().BoolVar(
		&directoryOptions.DryRun,
		"dry-run",
		false,
		"Do not write anything back to the spreadsheet",
	)
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"db-path",
		"db",
		"Directory for the local duckdb state (geocode cache, backups)",
	)
}

var (
	directoryOptions = &directory.Options{}
	dbPath           string
)

var rootCmd = &cobra.Command{
	Use:   "genmap",
	Short: "maintain the genetics provider directory",
	Long: `
genmap cleans the crowd-submitted provider directory kept in Google Sheets,
geocodes institutions and addresses for the map, promotes the reviewed
Working Copy to Production and publishes the public projection.
`,
	SilenceUsage: true,
}

var Version = "dev"

func Execute(version string) {
	Version = version

	// an interrupted run returns before its final write, leaving the sheet as it was
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// openStore resolves credentials and connects to the spreadsheet. Missing
// credentials fail here, before anything is read or written.
func openStore(ctx context.Context) (directory.Store, error) {
	key, sheetID, err := directoryOptions.Credentials()
	if err != nil {
		return nil, err
	}

	store, err := directory.NewSheetsStore(ctx, sheetID, key)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}

	return store, nil
}

// writeTab persists t unless --dry-run is set.
func writeTab(ctx context.Context, store directory.Store, tab string, t *directory.Table) error {
	if directoryOptions.DryRun {
		log.Printf("Dry run, not writing %d rows to %s", len(t.Rows), tab)

		return nil
	}

	log.Printf("Writing to %s...", tab)

	return store.Write(ctx, tab, t)
}

func openDB() (*sql.DB, error) {
	if err := os.MkdirAll(dbPath, 0o750); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", filepath.Join(dbPath, "genmap.duckdb"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return db, nil
}
