package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gridcli/pkg/contracts/domain"
)

const reportSheet = "Report"

// WriteWorkbook writes the given row view of a table to a styled xlsx
// report: bold header row, widened columns, numeric cells stored as
// numbers so the spreadsheet can recompute over them.
func WriteWorkbook(path string, table *domain.Table, rows []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(reportSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for j, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(reportSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}
	if len(table.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
		if err != nil {
			return fmt.Errorf("failed to address header row: %w", err)
		}
		if err := f.SetCellStyle(reportSheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header row: %w", err)
		}
		endCol, err := excelize.ColumnNumberToName(len(table.Headers))
		if err != nil {
			return fmt.Errorf("failed to resolve last column: %w", err)
		}
		if err := f.SetColWidth(reportSheet, "A", endCol, 16); err != nil {
			return fmt.Errorf("failed to set column widths: %w", err)
		}
	}

	for i, row := range rows {
		for j, header := range table.Headers {
			cellValue, ok := row[header]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if cellValue.Kind() == domain.CellNumeric {
				err = f.SetCellValue(reportSheet, cell, cellValue.Number())
			} else {
				err = f.SetCellValue(reportSheet, cell, cellValue.Text())
			}
			if err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("Wrote xlsx report",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}
