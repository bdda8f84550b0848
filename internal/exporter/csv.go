package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gridcli/pkg/contracts/domain"
)

// WriteCSV writes the given row view of a table to a CSV file. The rows are
// typically the already-filtered array produced by the range filter; the
// header order is the table's. A UTF-8 BOM is prepended so Excel opens the
// file correctly.
func WriteCSV(path string, table *domain.Table, rows []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range rows {
		record := make([]string, len(table.Headers))
		for j, header := range table.Headers {
			if cell, ok := row[header]; ok {
				record[j] = formatCell(cell)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	slog.Info("Wrote CSV report",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}
