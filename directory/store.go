// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Tab names of the admin spreadsheet.
const (
	WorkingCopy = "Working Copy"
	Production  = "Production"
)

// ErrMissingSheetID is returned when no spreadsheet is configured.
var ErrMissingSheetID = errors.New("spreadsheet id is not set")

// Store is the tabular backing store. Write replaces the whole tab, never single rows.
type Store interface {
	Read(ctx context.Context, tab string) (*Table, error)
	Write(ctx context.Context, tab string, t *Table) error
}

// SheetsStore keeps the directory in a Google Sheets spreadsheet.
type SheetsStore struct {
	spreadsheetID string
	service       *sheets.Service
}

// NewSheetsStore authenticates with a service account key.
func NewSheetsStore(ctx context.Context, spreadsheetID string, serviceAccountJSON []byte) (*SheetsStore, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, ErrMissingSheetID
	}

	creds, err := google.CredentialsFromJSON(ctx, serviceAccountJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account key: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets client: %w", err)
	}

	return &SheetsStore{spreadsheetID: strings.TrimSpace(spreadsheetID), service: service}, nil
}

func tabRange(tab, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(tab, "'", "''"), cells)
}

// Read fetches the whole tab.
func (s *SheetsStore) Read(ctx context.Context, tab string) (*Table, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, tabRange(tab, "A:O")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", tab, err)
	}

	values := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		values[i] = make([]string, len(row))
		for j, v := range row {
			values[i][j] = fmt.Sprint(v)
		}
	}

	return NewTable(values), nil
}

// Write replaces the tab contents starting at A1, letting Sheets interpret
// values as if typed by a user.
func (s *SheetsStore) Write(ctx context.Context, tab string, t *Table) error {
	values := t.Values()
	rows := make([][]interface{}, len(values))

	for i, r := range values {
		rows[i] = make([]interface{}, len(r))
		for j, v := range r {
			rows[i][j] = v
		}
	}

	_, err := s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		tabRange(tab, "A1"),
		&sheets.ValueRange{Values: rows},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing %s: %w", tab, err)
	}

	return nil
}

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	Tabs   map[string][][]string
	Writes int
}

// NewMemoryStore returns a store holding a copy of tabs.
func NewMemoryStore(tabs map[string][][]string) *MemoryStore {
	m := &MemoryStore{Tabs: make(map[string][][]string, len(tabs))}
	for k, v := range tabs {
		m.Tabs[k] = copyValues(v)
	}

	return m
}

// Read implements Store.
func (m *MemoryStore) Read(_ context.Context, tab string) (*Table, error) {
	v, ok := m.Tabs[tab]
	if !ok {
		return nil, fmt.Errorf("reading %s: no such tab", tab)
	}

	return NewTable(copyValues(v)), nil
}

// Write implements Store.
func (m *MemoryStore) Write(_ context.Context, tab string, t *Table) error {
	if m.Tabs == nil {
		m.Tabs = make(map[string][][]string)
	}

	m.Tabs[tab] = t.Values()
	m.Writes++

	return nil
}

func copyValues(v [][]string) [][]string {
	out := make([][]string, len(v))
	for i, r := range v {
		out[i] = append([]string(nil), r...)
	}

	return out
}
