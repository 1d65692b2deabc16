// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

// Package normalize turns crowd-submitted spreadsheet cells into canonical
// values. Every cleaner is a pure function of its input and its configuration;
// an empty string return value means "absent".
package normalize
