// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/normalize"
	"github.com/spf13/cobra"
)

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Copy the Working Copy to Production with name cleanup",
	Long: `Admins edit the Working Copy; promote copies it to Production, cleaning
names, recovering phone numbers damaged by formula evaluation from the current
Production tab, and quoting phones Sheets would read as formulas.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		var book normalize.PhoneBook

		if prod, err := store.Read(ctx, directory.Production); err != nil {
			log.Printf("⚠️  could not read %s for phone recovery: %v", directory.Production, err)
		} else {
			book = normalize.NewPhoneBook(prod.Providers())
		}

		log.Printf("Reading %s...", directory.WorkingCopy)

		tbl, err := store.Read(ctx, directory.WorkingCopy)
		if err != nil {
			return err
		}

		providers := tbl.Providers()
		if len(providers) == 0 {
			return fmt.Errorf("%s has no data rows", directory.WorkingCopy)
		}

		stats := normalize.Promote(providers, book)
		tbl.SetProviders(providers)

		if err := writeTab(ctx, store, directory.Production, tbl); err != nil {
			return fmt.Errorf("promoting: %w", err)
		}

		log.Printf("✅ Promoted %d rows from %s to %s (%d anonymous, %d phones recovered, %d dropped)",
			len(providers), directory.WorkingCopy, directory.Production,
			stats.Anonymous, stats.PhonesRecovered, stats.PhonesDropped)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd)
}
