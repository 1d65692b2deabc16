// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables and credential files understood by Options.
const (
	EnvServiceAccountKey  = "GCP_SA_KEY"
	EnvSheetID            = "SHEET_ID"
	DefaultCredentialsDir = ".gcp-credentials"
	ServiceAccountKeyFile = "genetics-map-sa-key.json"
	SheetIDFile           = "sheet-id.txt"
)

// ErrMissingCredentials is returned when no service account key can be found.
var ErrMissingCredentials = errors.New("service account key not found")

// Options locates the spreadsheet and the credentials to open it.
type Options struct {
	// CredentialsDir holds the key and sheet id files
	CredentialsDir string

	// SpreadsheetID overrides the id from the environment or files
	SpreadsheetID string

	// DryRun skips every write to the spreadsheet
	DryRun bool
}

// Credentials returns the service account key and the spreadsheet id. The
// GCP_SA_KEY and SHEET_ID pair wins over files in CredentialsDir.
func (o *Options) Credentials() ([]byte, string, error) {
	key, id := []byte(os.Getenv(EnvServiceAccountKey)), strings.TrimSpace(os.Getenv(EnvSheetID))

	if len(key) == 0 || id == "" {
		dir := o.CredentialsDir
		if dir == "" {
			dir = DefaultCredentialsDir
		}

		keyPath := filepath.Join(dir, ServiceAccountKeyFile)

		var err error

		key, err = os.ReadFile(keyPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, "", fmt.Errorf("%w: set %s and %s, or create %s", ErrMissingCredentials, EnvServiceAccountKey, EnvSheetID, keyPath)
			}

			return nil, "", fmt.Errorf("reading %s: %w", keyPath, err)
		}

		idPath := filepath.Join(dir, SheetIDFile)

		raw, err := os.ReadFile(idPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %s: %w", idPath, err)
		}

		id = strings.TrimSpace(string(raw))
	}

	if o.SpreadsheetID != "" {
		id = strings.TrimSpace(o.SpreadsheetID)
	}

	if id == "" {
		return nil, "", ErrMissingSheetID
	}

	return key, id, nil
}
