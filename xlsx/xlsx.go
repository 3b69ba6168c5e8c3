// Package xlsx implements the sheetpos Backend over a local excelize
// workbook. It mirrors the remote backend's contract closely enough that the
// store cannot tell them apart: trailing empty rows are trimmed on reads,
// appends land after the last used row, dimension deletes shift rows up.
// Used for offline work, fixtures and backend contract tests.
package xlsx

import (
	"context"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/mkartashov/sheetpos"
)

// Workbook is a Backend over one xlsx file.
type Workbook struct {
	mu       sync.Mutex
	file     *excelize.File
	path     string // "" for in-memory workbooks
	readOnly bool
}

// Option configures a Workbook.
type Option func(*Workbook)

// ReadOnly opens the workbook without write permission, so the store's
// credential gate refuses mutations the same way it does for an API-key
// Sheets client.
func ReadOnly() Option {
	return func(w *Workbook) { w.readOnly = true }
}

// Open opens an existing workbook file.
func Open(path string, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %q: %w", path, err)
	}
	w := &Workbook{file: f, path: path}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// New creates an in-memory workbook with the given sheet titles, the first
// replacing the default sheet.
func New(titles ...string) *Workbook {
	f := excelize.NewFile()
	for i, title := range titles {
		if i == 0 {
			f.SetSheetName("Sheet1", title)
			continue
		}
		f.NewSheet(title)
	}
	return &Workbook{file: f}
}

// ReadOnly reports whether mutations are refused.
func (w *Workbook) ReadOnly() bool {
	return w.readOnly
}

// GetRange reads cell values from an A1 range.
func (w *Workbook) GetRange(_ context.Context, a1 string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rng, err := sheetpos.ParseRange(a1)
	if err != nil {
		return nil, err
	}
	all, err := w.file.GetRows(rng.First.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", rng.First.Sheet, err)
	}

	startRow := rng.First.Row
	if startRow < 0 {
		startRow = 0
	}
	endRow := rng.Last.Row // inclusive; -1 = to the end
	if endRow < 0 || endRow >= len(all) {
		endRow = len(all) - 1
	}

	var out [][]string
	for r := startRow; r <= endRow && r < len(all); r++ {
		row := sliceCols(all[r], rng.First.Col, rng.Last.Col)
		out = append(out, row)
	}
	return trimTrailingEmptyRows(out), nil
}

// UpdateRange overwrites cells starting at the top-left of the range.
func (w *Workbook) UpdateRange(_ context.Context, a1 string, rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rng, err := sheetpos.ParseRange(a1)
	if err != nil {
		return err
	}
	return w.writeAt(rng.First.Sheet, rng.First.Row, rng.First.Col, rows)
}

// AppendRows appends rows after the last used row of the sheet.
func (w *Workbook) AppendRows(_ context.Context, a1 string, rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rng, err := sheetpos.ParseRange(a1)
	if err != nil {
		return err
	}
	all, err := w.file.GetRows(rng.First.Sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", rng.First.Sheet, err)
	}
	last := len(all)
	for last > 0 && rowEmpty(all[last-1]) {
		last--
	}
	return w.writeAt(rng.First.Sheet, last, rng.First.Col, rows)
}

func (w *Workbook) writeAt(sheet string, row, col int, rows [][]string) error {
	if col < 0 {
		col = 0
	}
	for r, cells := range rows {
		for c, v := range cells {
			name, err := excelize.CoordinatesToCellName(col+c+1, row+r+1)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", row+r, col+c, err)
			}
			if err := w.file.SetCellValue(sheet, name, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, name, err)
			}
		}
	}
	return nil
}

// DeleteRows removes whole rows [start, end) by 0-based index.
func (w *Workbook) DeleteRows(_ context.Context, sheetID int64, start, end int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sheet := w.file.GetSheetName(int(sheetID))
	if sheet == "" {
		return fmt.Errorf("sheet id %d: %w", sheetID, sheetpos.ErrNotFound)
	}
	// RemoveRow shifts rows up, so the same 1-based index is removed
	// (end - start) times.
	for i := start; i < end; i++ {
		if err := w.file.RemoveRow(sheet, int(start)+1); err != nil {
			return fmt.Errorf("remove row %d of %q: %w", start+1, sheet, err)
		}
	}
	return nil
}

// SheetID resolves a sheet title to its index in the workbook.
func (w *Workbook) SheetID(_ context.Context, title string) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx, err := w.file.GetSheetIndex(title)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("sheet %q: %w", title, sheetpos.ErrNotFound)
	}
	return int64(idx), nil
}

// Save writes the workbook back to the file it was opened from.
func (w *Workbook) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.path == "" {
		return fmt.Errorf("workbook has no backing file")
	}
	return w.file.Save()
}

// SaveAs writes the workbook to the given path and keeps it as the backing
// file for later saves.
func (w *Workbook) SaveAs(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.SaveAs(path); err != nil {
		return err
	}
	w.path = path
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// File exposes the underlying excelize file for fixtures and tests.
func (w *Workbook) File() *excelize.File {
	return w.file
}

func sliceCols(row []string, first, last int) []string {
	if first < 0 {
		first = 0
	}
	if first >= len(row) {
		return nil
	}
	end := last + 1
	if end > len(row) {
		end = len(row)
	}
	out := make([]string, end-first)
	copy(out, row[first:end])
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func rowEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}

func trimTrailingEmptyRows(rows [][]string) [][]string {
	for len(rows) > 0 && rowEmpty(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}
