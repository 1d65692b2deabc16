// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/publish"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the public projection of Production to CSV",
	Long:  `Writes every Production row as a fully quoted CSV line. The credential column is never exported.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		tbl, err := store.Read(ctx, directory.Production)
		if err != nil {
			return err
		}

		providers := tbl.Providers()
		if len(providers) == 0 {
			return fmt.Errorf("%s has no data rows", directory.Production)
		}

		var w io.Writer = os.Stdout

		if exportOut != "-" {
			if err := os.MkdirAll(filepath.Dir(exportOut), 0o750); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOut, err)
			}
			defer f.Close()

			w = f
		}

		if err := publish.WriteCSV(w, providers); err != nil {
			return err
		}

		log.Printf("✅ Exported %d rows from %s to %s", len(providers), directory.Production, exportOut)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(
		&exportOut,
		"out",
		filepath.Join("data", "data.csv"),
		"Output file, - for stdout",
	)
}
