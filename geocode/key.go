// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey and APIKeyFile are the places LoadAPIKey looks before ADC.
const (
	EnvAPIKey  = "GOOGLE_MAPS_API_KEY"
	APIKeyFile = "geocoding-api-key.txt"
)

// KeyOptions configures LoadAPIKey.
type KeyOptions struct {
	// CredentialsDir holds APIKeyFile
	CredentialsDir string

	// ProjectID is used for the ADC lookup when the credentials carry none
	ProjectID string

	// SkipADC disables the Application Default Credentials fallback
	SkipADC bool
}

// LoadAPIKey returns the Geocoding key from the environment, the
// credentials directory or, failing both, the project's API keys.
func LoadAPIKey(ctx context.Context, o KeyOptions) (string, error) {
	if k := strings.TrimSpace(os.Getenv(EnvAPIKey)); k != "" {
		return k, nil
	}

	path := filepath.Join(o.CredentialsDir, APIKeyFile)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if k := strings.TrimSpace(string(raw)); k != "" {
			return k, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if o.SkipADC {
		return "", fmt.Errorf("%w: set %s or create %s", ErrMissingAPIKey, EnvAPIKey, path)
	}

	log.Printf("No geocoding key in %s or %s, trying Application Default Credentials...", EnvAPIKey, path)

	k, err := APIKeyFromADC(ctx, o.ProjectID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingAPIKey, err)
	}

	return k, nil
}
