package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"gridcli/pkg/contracts/domain"
)

// Format is the extraction hint for raw file content.
type Format int

const (
	FormatCSV Format = iota
	FormatWorkbook
)

// DetectFormat picks the extraction format from the file extension.
// Anything that is not a workbook is treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return FormatWorkbook
	default:
		return FormatCSV
	}
}

// ParseFile reads path fully into memory and runs the normalization
// pipeline. The read is the only I/O; per-cell anomalies never abort the
// ingestion, only an unreadable or undecodable file does.
func ParseFile(ctx context.Context, path string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(content, DetectFormat(path), filepath.Base(path))
}

// Parse runs the full pipeline over raw content: extraction, coercion,
// axis detection, stable time sort. Fewer than two usable rows produces an
// empty table, not an error; the presentation layer decides how to surface
// that.
func Parse(content []byte, format Format, sourceName string) (*domain.Table, error) {
	var (
		headers []string
		raw     []RawRow
		err     error
	)
	switch format {
	case FormatWorkbook:
		headers, raw, err = ExtractWorkbook(content)
		if err != nil {
			return nil, fmt.Errorf("failed to extract workbook %s: %w", sourceName, err)
		}
	default:
		headers, raw = ExtractCSV(string(content))
	}

	table := &domain.Table{
		ID:         uuid.NewString(),
		Headers:    headers,
		SourceName: sourceName,
		IngestedAt: time.Now().UnixMilli(),
	}
	if len(headers) == 0 {
		table.Headers = []string{}
		table.Rows = []domain.Record{}
		slog.Info("Ingested empty table",
			slog.String("source", sourceName))
		return table, nil
	}

	table.Rows = CoerceRows(headers, raw)
	if table.Rows == nil {
		table.Rows = []domain.Record{}
	}
	if axis, ok := DetectTimeAxis(headers); ok {
		table.HasTimeAxis = true
		table.AxisHeader = axis
		table.Rows = SortByAxis(table.Rows, axis)
	}

	slog.Info("Ingested table",
		slog.String("source", sourceName),
		slog.String("table_id", table.ID),
		slog.Int("headers", len(table.Headers)),
		slog.Int("rows", len(table.Rows)),
		slog.Bool("has_time_axis", table.HasTimeAxis),
		slog.String("axis_header", table.AxisHeader))
	return table, nil
}
