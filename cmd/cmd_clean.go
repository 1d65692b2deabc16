// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/normalize"
	"github.com/genetics-map/genmap/publish"
	"github.com/spf13/cobra"
)

var cleanOutputStdout bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Normalize every field of the Production tab",
	Long: `Reads Production, normalizes emails, phones, websites, names, addresses,
cities, countries and language lists, and writes the whole tab back.`,
	Args: cobra.NoArgs,
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
			log.Printf("Production has no data rows.")

			if cleanOutputStdout {
				return publish.WriteCSV(os.Stdout, nil)
			}

			return nil
		}

		n := normalize.NewCleaner().CleanAll(providers)
		tbl.SetProviders(providers)

		if err := writeTab(ctx, store, directory.Production, tbl); err != nil {
			return fmt.Errorf("writing cleaned rows: %w", err)
		}

		log.Printf("✅ Cleaned and validated %d rows → %s tab", n, directory.Production)

		if cleanOutputStdout {
			return publish.WriteCSV(os.Stdout, providers)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(
		&cleanOutputStdout,
		"output-stdout",
		false,
		"Print the cleaned public CSV to stdout",
	)
}
