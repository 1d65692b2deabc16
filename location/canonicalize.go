// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package location

import "github.com/genetics-map/genmap/directory"

// Canonicalize rewrites aliased cities and fills cityless points inside the
// metro bounds. It returns how many providers changed; a second run over the
// same providers changes nothing.
func Canonicalize(cfg *Config, providers []*directory.Provider) int {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	changed := 0

	for _, p := range providers {
		switch {
		case p.City != "":
			if fixed := cfg.Aliases.Apply(p.City); fixed != p.City {
				p.City = fixed
				changed++
			}
		case cfg.MetroCity != "" && cfg.MetroBounds.Contains(p.Point):
			p.City = cfg.MetroCity
			changed++
		}
	}

	return changed
}
