package sheetpos

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeBackend is an in-memory Backend with call counters and error
// injection. Grids hold whole sheets, header row included.
type fakeBackend struct {
	grids    map[string][][]string
	ids      map[string]int64
	readOnly bool

	failReads  error
	failWrites error

	getCalls      int
	updateCalls   int
	appendCalls   int
	deleteCalls   int
	metadataReads int

	appendedBatches [][][]string
}

func newFakeBackend(sheets ...string) *fakeBackend {
	b := &fakeBackend{
		grids: make(map[string][][]string),
		ids:   make(map[string]int64),
	}
	for i, s := range sheets {
		b.grids[s] = [][]string{}
		b.ids[s] = int64(100 + i)
	}
	return b
}

func (b *fakeBackend) setRows(sheet string, rows ...[]string) {
	b.grids[sheet] = rows
}

func (b *fakeBackend) rowCount(sheet string) int {
	return len(b.grids[sheet])
}

func (b *fakeBackend) GetRange(_ context.Context, a1 string) ([][]string, error) {
	b.getCalls++
	if b.failReads != nil {
		return nil, b.failReads
	}
	rng, err := ParseRange(a1)
	if err != nil {
		return nil, err
	}
	grid, ok := b.grids[rng.First.Sheet]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", rng.First.Sheet)
	}

	startRow := rng.First.Row
	if startRow < 0 {
		startRow = 0
	}
	endRow := rng.Last.Row
	if endRow < 0 || endRow >= len(grid) {
		endRow = len(grid) - 1
	}

	var out [][]string
	for r := startRow; r <= endRow && r < len(grid); r++ {
		row := grid[r]
		first, last := rng.First.Col, rng.Last.Col
		var cells []string
		for c := first; c <= last && c < len(row); c++ {
			cells = append(cells, row[c])
		}
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
		out = append(out, cells)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (b *fakeBackend) UpdateRange(_ context.Context, a1 string, rows [][]string) error {
	b.updateCalls++
	if b.failWrites != nil {
		return b.failWrites
	}
	rng, err := ParseRange(a1)
	if err != nil {
		return err
	}
	grid := b.grids[rng.First.Sheet]
	for r, cells := range rows {
		row := rng.First.Row + r
		for len(grid) <= row {
			grid = append(grid, []string{})
		}
		for c, v := range cells {
			col := rng.First.Col + c
			for len(grid[row]) <= col {
				grid[row] = append(grid[row], "")
			}
			grid[row][col] = v
		}
	}
	b.grids[rng.First.Sheet] = grid
	return nil
}

func (b *fakeBackend) AppendRows(_ context.Context, a1 string, rows [][]string) error {
	b.appendCalls++
	if b.failWrites != nil {
		return b.failWrites
	}
	rng, err := ParseRange(a1)
	if err != nil {
		return err
	}
	b.grids[rng.First.Sheet] = append(b.grids[rng.First.Sheet], rows...)
	b.appendedBatches = append(b.appendedBatches, rows)
	return nil
}

func (b *fakeBackend) DeleteRows(_ context.Context, sheetID int64, start, end int64) error {
	b.deleteCalls++
	if b.failWrites != nil {
		return b.failWrites
	}
	for title, id := range b.ids {
		if id != sheetID {
			continue
		}
		grid := b.grids[title]
		if start < 0 || end > int64(len(grid)) || start > end {
			return fmt.Errorf("bad delete range [%d,%d) for %d rows", start, end, len(grid))
		}
		b.grids[title] = append(grid[:start], grid[end:]...)
		return nil
	}
	return fmt.Errorf("no sheet with id %d", sheetID)
}

func (b *fakeBackend) SheetID(_ context.Context, title string) (int64, error) {
	b.metadataReads++
	if b.failReads != nil {
		return 0, b.failReads
	}
	id, ok := b.ids[title]
	if !ok {
		return 0, fmt.Errorf("sheet %q: %w", title, ErrNotFound)
	}
	return id, nil
}

func (b *fakeBackend) ReadOnly() bool {
	return b.readOnly
}

// testClock is the fixed "now" used by timestamp fallback tests.
var testClock = func() time.Time {
	return time.Date(2024, 11, 30, 12, 30, 45, 0, time.UTC)
}

// newTestStore builds a Store over a fresh fake backend with default sheet
// titles and a fixed clock.
func newTestStore(t *testing.T) (*Store, *fakeBackend) {
	t.Helper()
	backend := newFakeBackend(DefaultProductsSheet, DefaultUsersSheet, DefaultOrdersSheet)
	store, err := New(backend, Config{},
		WithLogger(slog.New(slog.DiscardHandler)),
		WithClock(testClock),
	)
	require.NoError(t, err)
	return store, backend
}

// testCodec returns a codec with a quiet logger and the fixed clock.
func testCodec() rowCodec {
	return rowCodec{log: slog.New(slog.DiscardHandler), now: testClock}
}
