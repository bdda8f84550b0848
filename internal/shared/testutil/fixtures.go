// Package testutil provides fixtures shared across package tests: xlsx
// workbook bytes built in memory and a buffered slog handler for asserting
// on log output.
package testutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WorkbookBytes builds an in-memory xlsx file whose first sheet holds the
// given grid, row 0 included. Cells are written as strings, matching what
// the extractor reads back via GetRows.
func WorkbookBytes(t *testing.T, grid [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range grid {
		for j, cell := range row {
			if cell == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}
