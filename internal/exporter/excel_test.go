package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gridcli/pkg/contracts/domain"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	table := reportTable()

	require.NoError(t, WriteWorkbook(path, table, table.Rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Datum", "Wert", "Note"}, rows[0])
	assert.Equal(t, "2024-01-01", rows[1][0])
	assert.Equal(t, "ok", rows[1][2])

	// numeric cells are stored as numbers, not shared strings
	cellType, err := f.GetCellType(reportSheet, "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
	value, err := f.GetCellValue(reportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "13.4", value)
}

func TestWriteWorkbookEmptyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	table := &domain.Table{Headers: []string{"A"}}

	require.NoError(t, WriteWorkbook(path, table, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}
