package sheetpos

import (
	"fmt"
	"strings"
)

// CellRef is a single cell position. Row and Col are 0-based; Row < 0 means
// the row is unbounded, which appears in open-ended ranges like "A2:E".
type CellRef struct {
	Sheet string
	Row   int
	Col   int
}

// CellName returns the cell part like "B5", or just the column letter when
// the row is unbounded.
func (c CellRef) CellName() string {
	if c.Row < 0 {
		return ColName(c.Col)
	}
	return fmt.Sprintf("%s%d", ColName(c.Col), c.Row+1)
}

// String formats the reference as "Sheet!B5", quoting sheet names that
// contain spaces the way the Sheets API expects.
func (c CellRef) String() string {
	if c.Sheet == "" {
		return c.CellName()
	}
	return quoteSheet(c.Sheet) + "!" + c.CellName()
}

// RangeRef is a rectangular range. Last.Row < 0 means the range is open-ended
// toward the bottom of the sheet ("Products!A2:E").
type RangeRef struct {
	First CellRef
	Last  CellRef
}

// String formats the range in A1 notation with the sheet taken from First.
func (r RangeRef) String() string {
	base := r.First.CellName() + ":" + r.Last.CellName()
	if r.First.Sheet == "" {
		return base
	}
	return quoteSheet(r.First.Sheet) + "!" + base
}

// ParseRange parses A1 notation like "Products!A2:E5", "Products!A2:E" or
// "A:E". Open-ended sides get Row = -1.
func ParseRange(s string) (RangeRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RangeRef{}, fmt.Errorf("empty range")
	}

	var sheet string
	rest := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		sheet = strings.Trim(s[:idx], "'")
		rest = s[idx+1:]
	}

	parts := strings.SplitN(rest, ":", 2)
	first, err := parseCell(parts[0])
	if err != nil {
		return RangeRef{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	first.Sheet = sheet

	last := first
	if len(parts) == 2 {
		last, err = parseCell(parts[1])
		if err != nil {
			return RangeRef{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		last.Sheet = sheet
	}
	return RangeRef{First: first, Last: last}, nil
}

// parseCell parses "B5" or a bare column letter "B" (unbounded row).
func parseCell(s string) (CellRef, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "$", "")
	if s == "" {
		return CellRef{}, fmt.Errorf("empty cell")
	}

	i := 0
	for i < len(s) && isColLetter(s[i]) {
		i++
	}
	if i == 0 {
		return CellRef{}, fmt.Errorf("missing column in %q", s)
	}

	col, err := ColIndex(s[:i])
	if err != nil {
		return CellRef{}, err
	}
	if i == len(s) {
		return CellRef{Row: -1, Col: col}, nil
	}

	row := 0
	for _, ch := range s[i:] {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("invalid row in %q", s)
		}
		row = row*10 + int(ch-'0')
	}
	if row < 1 {
		return CellRef{}, fmt.Errorf("invalid row in %q", s)
	}
	return CellRef{Row: row - 1, Col: col}, nil
}

func isColLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// ColName converts a 0-based column index to its letter name.
// 0→"A", 25→"Z", 26→"AA".
func ColName(col int) string {
	name := ""
	col++
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}

// ColIndex converts a column letter name to its 0-based index.
func ColIndex(name string) (int, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("empty column name")
	}
	col := 0
	for _, ch := range name {
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("invalid column name: %q", name)
		}
		col = col*26 + int(ch-'A') + 1
	}
	return col - 1, nil
}

func quoteSheet(name string) string {
	if strings.ContainsAny(name, " -()") {
		return "'" + name + "'"
	}
	return name
}
