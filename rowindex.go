package sheetpos

import (
	"context"
	"fmt"
)

// keyColumn pairs a column offset with the value it must hold for a row to
// match. Empty and missing cells compare equal, so optional keys like the
// product volume match rows where the cell was never written.
type keyColumn struct {
	col   int
	value string
}

// findRow linearly scans the key column(s) of a table and returns the
// 1-based sheet row of the first match. Only the key columns travel over the
// wire, never whole rows. Returns an error wrapping ErrNotFound when no row
// matches. O(n) per lookup; fine for tables of tens to low hundreds of rows.
func (s *Store) findRow(ctx context.Context, schema tableSchema, keys []keyColumn) (int, error) {
	if len(keys) == 0 {
		return 0, fmt.Errorf("find row in %q: no key columns", schema.title)
	}

	first, last := keys[0].col, keys[0].col
	for _, k := range keys[1:] {
		if k.col < first {
			first = k.col
		}
		if k.col > last {
			last = k.col
		}
	}

	rows, err := s.backend.GetRange(ctx, schema.keyRange(first, last))
	if err != nil {
		return 0, fmt.Errorf("scan key columns of %q: %w", schema.title, err)
	}

	for i, row := range rows {
		match := true
		for _, k := range keys {
			if cell(row, k.col-first) != k.value {
				match = false
				break
			}
		}
		if match {
			return i + schema.dataStartRow(), nil
		}
	}
	return 0, fmt.Errorf("row in %q for key %q: %w", schema.title, keyString(keys), ErrNotFound)
}

func keyString(keys []keyColumn) string {
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "|"
		}
		out += k.value
	}
	return out
}
