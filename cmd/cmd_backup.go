// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/utils/textutil"
	"github.com/spf13/cobra"
)

var backupOptions = struct {
	Tab  string
	Keep int
}{}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot a tab into the local database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		tbl, err := store.Read(ctx, backupOptions.Tab)
		if err != nil {
			return err
		}

		if len(tbl.Rows) == 0 {
			log.Printf("%s is empty, skipping backup.", backupOptions.Tab)

			return nil
		}

		repo, closeDB, err := openSnapshots()
		if err != nil {
			return err
		}
		defer closeDB()

		id, err := repo.Save(backupOptions.Tab, tbl, time.Now())
		if err != nil {
			return err
		}

		pruned, err := repo.Prune(backupOptions.Tab, backupOptions.Keep)
		if err != nil {
			return err
		}

		log.Printf("✅ Snapshot %d of %s: %s rows (%d old snapshots removed)",
			id, backupOptions.Tab, textutil.FormatInt(int64(len(tbl.Rows))), pruned)

		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the snapshots of a tab",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		repo, closeDB, err := openSnapshots()
		if err != nil {
			return err
		}
		defer closeDB()

		snapshots, err := repo.List(backupOptions.Tab)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAB\tTAKEN AT\tROWS")

		for _, s := range snapshots {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Tab, s.TakenAt.Local().Format(time.DateTime), textutil.FormatInt(int64(s.RowCount)))
		}

		return w.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Write a snapshot back to its tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snapshot id %q", args[0])
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}

		repo, closeDB, err := openSnapshots()
		if err != nil {
			return err
		}
		defer closeDB()

		s, err := repo.Load(id)
		if err != nil {
			return err
		}

		current, err := store.Read(ctx, s.Tab)
		if err != nil {
			return err
		}

		// blank out rows added after the snapshot was taken
		restored := directory.NewTable(s.Values)
		restored.Rows = append(restored.Rows, make([][]string, max(0, len(current.Rows)-len(restored.Rows)))...)

		if err := writeTab(ctx, store, s.Tab, restored); err != nil {
			return err
		}

		log.Printf("✅ Restored snapshot %d (%s) to %s", s.ID, s.TakenAt.Local().Format(time.DateTime), s.Tab)

		return nil
	},
}

func openSnapshots() (directory.SnapshotRepository, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	repo := directory.NewSnapshotRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("creating snapshot schema: %w", err)
	}

	return repo, func() { db.Close() }, nil
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	backupCmd.PersistentFlags().StringVar(
		&backupOptions.Tab,
		"tab",
		directory.Production,
		"Tab to snapshot",
	)
	backupCmd.Flags().IntVar(
		&backupOptions.Keep,
		"keep",
		3,
		"Number of snapshots to keep per tab",
	)
}
