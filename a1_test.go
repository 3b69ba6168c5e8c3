package sheetpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange_Bounded(t *testing.T) {
	r, err := ParseRange("Products!A2:E5")
	require.NoError(t, err)
	assert.Equal(t, "Products", r.First.Sheet)
	assert.Equal(t, 1, r.First.Row)
	assert.Equal(t, 0, r.First.Col)
	assert.Equal(t, 4, r.Last.Row)
	assert.Equal(t, 4, r.Last.Col)
}

func TestParseRange_OpenEnded(t *testing.T) {
	r, err := ParseRange("Products!A2:E")
	require.NoError(t, err)
	assert.Equal(t, 1, r.First.Row)
	assert.Equal(t, -1, r.Last.Row)
	assert.Equal(t, 4, r.Last.Col)
}

func TestParseRange_WholeColumns(t *testing.T) {
	r, err := ParseRange("Products!A:E")
	require.NoError(t, err)
	assert.Equal(t, -1, r.First.Row)
	assert.Equal(t, -1, r.Last.Row)
}

func TestParseRange_QuotedSheet(t *testing.T) {
	r, err := ParseRange("'Sales History'!A2:F")
	require.NoError(t, err)
	assert.Equal(t, "Sales History", r.First.Sheet)
	assert.Equal(t, 5, r.Last.Col)
}

func TestParseRange_SingleCell(t *testing.T) {
	r, err := ParseRange("Users!B5")
	require.NoError(t, err)
	assert.Equal(t, r.First, r.Last)
	assert.Equal(t, 4, r.First.Row)
	assert.Equal(t, 1, r.First.Col)
}

func TestParseRange_Invalid(t *testing.T) {
	for _, s := range []string{"", "Products!", "Products!1:2", "Products!A0:B1"} {
		_, err := ParseRange(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestRangeRef_String(t *testing.T) {
	r, err := ParseRange("'Sales History'!A2:F")
	require.NoError(t, err)
	assert.Equal(t, "'Sales History'!A2:F", r.String())

	r, err = ParseRange("Products!A2:E5")
	require.NoError(t, err)
	assert.Equal(t, "Products!A2:E5", r.String())
}

func TestColName(t *testing.T) {
	tests := map[int]string{
		0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 701: "ZZ", 702: "AAA",
	}
	for col, expected := range tests {
		assert.Equal(t, expected, ColName(col), "col %d", col)
	}
}

func TestColIndex_Roundtrip(t *testing.T) {
	for i := 0; i < 1000; i++ {
		col, err := ColIndex(ColName(i))
		require.NoError(t, err)
		assert.Equal(t, i, col)
	}
}

func TestColIndex_Invalid(t *testing.T) {
	_, err := ColIndex("")
	assert.Error(t, err)
	_, err = ColIndex("1A")
	assert.Error(t, err)
}
