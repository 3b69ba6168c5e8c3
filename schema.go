package sheetpos

// Column offsets per table. Headers occupy row 1 of every sheet; data starts
// at row 2. Misalignment here silently corrupts reads and writes, so the
// offsets are pinned by the codec tests rather than checked at runtime.

// Products sheet, columns A–E.
const (
	prodColName = iota
	prodColVolume
	prodColPrice
	prodColImageURL
	prodColAIHint
	prodColCount
)

// Users sheet, columns A–H.
const (
	userColID = iota
	userColLogin
	userColPasswordHash
	userColFirstName
	userColMiddleName
	userColLastName
	userColPosition
	userColIconColor
	userColCount
)

// Sales history sheet, columns A–F.
const (
	orderColID = iota
	orderColTimestamp
	orderColItems
	orderColPaymentMethod
	orderColTotalPrice
	orderColEmployee
	orderColCount
)

// tableSchema binds a configured sheet title to a fixed column layout.
type tableSchema struct {
	title      string
	headerRows int
	columns    int
}

func newTableSchema(title string, columns int) tableSchema {
	return tableSchema{title: title, headerRows: 1, columns: columns}
}

// dataStartRow is the 1-based sheet row of the first data row.
func (t tableSchema) dataStartRow() int {
	return t.headerRows + 1
}

// dataRange covers all data rows across every column, open-ended downward:
// "Products!A2:E".
func (t tableSchema) dataRange() string {
	return RangeRef{
		First: CellRef{Sheet: t.title, Row: t.headerRows, Col: 0},
		Last:  CellRef{Sheet: t.title, Row: -1, Col: t.columns - 1},
	}.String()
}

// fullRange covers the whole columns of the table, header included. Appends
// target this range so the provider places new rows after the last data row.
func (t tableSchema) fullRange() string {
	return RangeRef{
		First: CellRef{Sheet: t.title, Row: -1, Col: 0},
		Last:  CellRef{Sheet: t.title, Row: -1, Col: t.columns - 1},
	}.String()
}

// keyRange covers data rows of the columns [first, last] only. Lookups read
// one or two key columns, never whole rows.
func (t tableSchema) keyRange(firstCol, lastCol int) string {
	return RangeRef{
		First: CellRef{Sheet: t.title, Row: t.headerRows, Col: firstCol},
		Last:  CellRef{Sheet: t.title, Row: -1, Col: lastCol},
	}.String()
}

// rowRange covers one full data row at a 1-based sheet row: "Products!A5:E5".
func (t tableSchema) rowRange(row int) string {
	return RangeRef{
		First: CellRef{Sheet: t.title, Row: row - 1, Col: 0},
		Last:  CellRef{Sheet: t.title, Row: row - 1, Col: t.columns - 1},
	}.String()
}
