package sheetpos

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() [][]string {
	return [][]string{
		{"Name", "Volume", "Price", "Image", "Hint"},
		{"Латте", "0,3 л", "250,5", "", ""},
		{"Латте Айс", "0,3 л", "280", "", ""},
		{"Эспрессо", "", "120", "", ""},
	}
}

func TestProducts_FetchAll(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	list, err := store.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Латте", list[0].Name)
	require.NotNil(t, list[0].Price)
	assert.Equal(t, 250.5, *list[0].Price)
	assert.Equal(t, "", list[2].Volume)
}

func TestProducts_SkipsBlankRows(t *testing.T) {
	store, backend := newTestStore(t)
	rows := productRows()
	rows = append(rows, []string{""}, []string{"", "0,5 л"})
	backend.setRows(DefaultProductsSheet, rows...)

	list, err := store.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestProducts_ReadErrorPropagates(t *testing.T) {
	store, backend := newTestStore(t)
	backend.failReads = errors.New("backend down")

	_, err := store.Products(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend down")
}

func TestAddProduct_Appends(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	price := 300.0
	err := store.AddProduct(context.Background(), Product{Name: "Раф", Volume: "0,3 л", Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 5, backend.rowCount(DefaultProductsSheet))
	assert.Equal(t, 1, backend.appendCalls)
}

func TestAddProduct_DuplicateLeavesTableUnchanged(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)
	before := backend.rowCount(DefaultProductsSheet)

	err := store.AddProduct(context.Background(), Product{Name: "Латте", Volume: "0,3 л"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, before, backend.rowCount(DefaultProductsSheet))
	assert.Zero(t, backend.appendCalls)
}

func TestAddProduct_EmptyName(t *testing.T) {
	store, backend := newTestStore(t)

	err := store.AddProduct(context.Background(), Product{Volume: "0,3 л"})
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Zero(t, backend.getCalls)
}

func TestAddProduct_ReadOnlyGate(t *testing.T) {
	store, backend := newTestStore(t)
	backend.readOnly = true

	err := store.AddProduct(context.Background(), Product{Name: "Латте"})
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Zero(t, backend.getCalls)
	assert.Zero(t, backend.appendCalls)
}

func TestUpdateProduct_OverwritesRow(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	price := 260.0
	err := store.UpdateProduct(context.Background(), "Латте", "0,3 л",
		Product{Name: "Латте", Volume: "0,3 л", Price: &price})
	require.NoError(t, err)

	list, err := store.Products(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list[0].Price)
	assert.Equal(t, 260.0, *list[0].Price)
}

func TestUpdateProduct_RenameToExistingPairConflicts(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet,
		[]string{"Name", "Volume", "Price"},
		[]string{"Latte", "0.3L", "250"},
		[]string{"Latte Ice", "0.3L", "280"},
	)

	err := store.UpdateProduct(context.Background(), "Latte", "0.3L",
		Product{Name: "Latte Ice", Volume: "0.3L"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, backend.updateCalls)

	// Original row untouched.
	list, err := store.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Latte", list[0].Name)
	require.NotNil(t, list[0].Price)
	assert.Equal(t, 250.0, *list[0].Price)
}

func TestUpdateProduct_RenameToFreePair(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	err := store.UpdateProduct(context.Background(), "Латте", "0,3 л",
		Product{Name: "Латте", Volume: "0,4 л"})
	require.NoError(t, err)
	assert.Equal(t, 1, backend.updateCalls)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	err := store.UpdateProduct(context.Background(), "Раф", "",
		Product{Name: "Раф", Volume: "0,3 л"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, backend.updateCalls)
}

func TestDeleteProduct_RemovesTheRightRow(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	err := store.DeleteProduct(context.Background(), "Латте Айс", "0,3 л")
	require.NoError(t, err)

	list, err := store.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Латте", list[0].Name)
	assert.Equal(t, "Эспрессо", list[1].Name)
}

func TestDeleteProduct_NotFoundIssuesNoWrite(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)

	err := store.DeleteProduct(context.Background(), "Раф", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, backend.deleteCalls)
}

func TestDeleteProduct_AbortsWhenSheetIDUnresolved(t *testing.T) {
	store, backend := newTestStore(t)
	backend.setRows(DefaultProductsSheet, productRows()...)
	delete(backend.ids, DefaultProductsSheet)

	err := store.DeleteProduct(context.Background(), "Латте", "0,3 л")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, backend.deleteCalls)
}

func TestDeleteProduct_ReadOnlyGate(t *testing.T) {
	store, backend := newTestStore(t)
	backend.readOnly = true

	err := store.DeleteProduct(context.Background(), "Латте", "")
	assert.ErrorIs(t, err, ErrReadOnly)
	assert.Zero(t, backend.deleteCalls)
}
