// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/genetics-map/genmap/directory"
	"github.com/jszwec/csvutil"
)

// quoteAllWriter writes every field quoted, which keeps phone numbers and
// leading zeros intact when the file is opened in a spreadsheet.
type quoteAllWriter struct {
	w *bufio.Writer
}

func (q *quoteAllWriter) Write(record []string) error {
	for i, f := range record {
		if i > 0 {
			if err := q.w.WriteByte(','); err != nil {
				return err
			}
		}

		if _, err := q.w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}

	return q.w.WriteByte('\n')
}

// WriteCSV writes the public projection of providers, header first.
func WriteCSV(w io.Writer, providers []*directory.Provider) error {
	bw := bufio.NewWriter(w)

	enc := csvutil.NewEncoder(&quoteAllWriter{w: bw})
	enc.AutoHeader = false

	if err := enc.EncodeHeader(Record{}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, p := range providers {
		if err := enc.Encode(NewRecord(p)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	return bw.Flush()
}
