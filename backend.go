package sheetpos

import "context"

// Backend is the range-oriented surface the store needs from a spreadsheet
// provider. Cells travel as raw strings; the row codec owns all typing.
//
// Two implementations ship with the module: gsheets (Google Sheets API) and
// xlsx (a local excelize workbook).
type Backend interface {
	// GetRange reads cell values from an A1 range. Trailing empty rows and
	// cells may be omitted, matching Sheets API behavior.
	GetRange(ctx context.Context, a1 string) ([][]string, error)

	// UpdateRange overwrites cells starting at the top-left of the range.
	UpdateRange(ctx context.Context, a1 string, rows [][]string) error

	// AppendRows appends rows after the last data row of the table that the
	// range covers.
	AppendRows(ctx context.Context, a1 string, rows [][]string) error

	// DeleteRows removes whole rows [start, end) by 0-based index from the
	// sheet with the given internal id. Rows below shift up.
	DeleteRows(ctx context.Context, sheetID int64, start, end int64) error

	// SheetID resolves a sheet title to the provider's internal numeric id.
	// Returns an error wrapping ErrNotFound when no sheet has that title.
	SheetID(ctx context.Context, title string) (int64, error)

	// ReadOnly reports whether the backend was opened without credentials
	// that permit writes.
	ReadOnly() bool
}
