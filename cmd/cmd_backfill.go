// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"log"

	"github.com/genetics-map/genmap/directory"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Copy Production over the Working Copy",
	Long:  `One-time reset of the Working Copy from the published Production tab.`,
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

		if len(tbl.Rows) == 0 {
			log.Printf("%s is empty, nothing to copy.", directory.Production)

			return nil
		}

		if err := writeTab(ctx, store, directory.WorkingCopy, tbl); err != nil {
			return err
		}

		log.Printf("✅ Backfilled %s with %d rows from %s", directory.WorkingCopy, len(tbl.Rows), directory.Production)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}
