// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/genetics-map/genmap/directory"
	"github.com/genetics-map/genmap/publish"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the public directory API for the map",
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

		server := publish.NewServer(tbl.Providers())

		fmt.Printf("🗺️  Directory API with %d providers starting...\n", len(tbl.Rows))
		fmt.Printf("📍 http://%s/api/providers\n", serveAddr)

		return server.Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		"localhost:8080",
		"Address to listen on",
	)
}
