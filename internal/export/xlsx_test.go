package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX(t *testing.T) {
	table := Table{Sheet: "Routes", Headers: []string{"Plate", "Visits", "Km"}}
	table.AddRow("AB-1234", 9, "12.35")
	table.AddRow("CD-5678", 0, "N/A")

	buf, err := XLSX(table)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Routes"}, f.GetSheetList())
	rows, err := f.GetRows("Routes")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Plate", "Visits", "Km"},
		{"AB-1234", "9", "12.35"},
		{"CD-5678", "0", "N/A"},
	}, rows)
}

func TestXLSX_DefaultSheetAndEmptyRows(t *testing.T) {
	buf, err := XLSX(Table{Headers: []string{"ID"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID"}}, rows)
}

func TestXLSX_NoHeaders(t *testing.T) {
	_, err := XLSX(Table{Sheet: "x"})
	assert.ErrorIs(t, err, ErrNoHeaders)
}
