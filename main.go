// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/genetics-map/genmap/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
