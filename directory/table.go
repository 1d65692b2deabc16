// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package directory

// Table is a tab of the backing sheet: one header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string

	// loaded is the number of data rows present when the table was read. A
	// write covers at least that many rows so stale rows are blanked out.
	loaded int
}

// NewTable builds a table from the values returned by a bulk read. Ragged
// rows are right-padded with "" up to the widest row or the known columns.
func NewTable(values [][]string) *Table {
	if len(values) == 0 {
		return &Table{Header: append([]string(nil), Headers...)}
	}

	t := &Table{Header: values[0], Rows: values[1:], loaded: len(values) - 1}

	width := NewColumns(t.Header).Width()
	for _, r := range values {
		if len(r) > width {
			width = len(r)
		}
	}

	for i, r := range t.Rows {
		if len(r) < width {
			t.Rows[i] = append(r, make([]string, width-len(r))...)
		}
	}

	return t
}

// Columns indexes the table header.
func (t *Table) Columns() Columns {
	return NewColumns(t.Header)
}

// Providers decodes every data row.
func (t *Table) Providers() []*Provider {
	cols := t.Columns()
	out := make([]*Provider, len(t.Rows))

	for i, r := range t.Rows {
		out[i] = cols.Decode(r)
	}

	return out
}

// SetProviders encodes providers back into the rows they were decoded from.
// providers[i] replaces Rows[i]; extra providers are appended.
func (t *Table) SetProviders(providers []*Provider) {
	cols := t.Columns()

	for i, p := range providers {
		if i < len(t.Rows) {
			t.Rows[i] = cols.Encode(p, t.Rows[i])
		} else {
			t.Rows = append(t.Rows, cols.Encode(p, nil))
		}
	}
}

// Values returns header and rows as one rectangular block ready for a bulk
// write, padded with blank rows up to the number of rows originally read.
func (t *Table) Values() [][]string {
	width := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	n := len(t.Rows)
	if t.loaded > n {
		n = t.loaded
	}

	out := make([][]string, 0, n+1)
	out = append(out, pad(t.Header, width))

	for i := 0; i < n; i++ {
		var r []string
		if i < len(t.Rows) {
			r = t.Rows[i]
		}

		out = append(out, pad(r, width))
	}

	return out
}

func pad(r []string, width int) []string {
	out := make([]string, width)
	copy(out, r)

	return out
}
