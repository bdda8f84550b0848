package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// RawRow is a header-keyed mapping of untyped values as they came out of the
// source file: strings for delimited text, string or float64 for workbooks.
type RawRow map[string]any

// ExtractCSV splits comma-separated content into headers and raw rows.
// The first line is the header line; lines with no non-whitespace content
// are skipped entirely. Fewer than two lines yields an empty result.
func ExtractCSV(content string) ([]string, []RawRow) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	// fewer than header + one data row resolves to an empty table
	if len(lines) < 2 {
		return nil, nil
	}

	headers, index := buildHeaderIndex(splitFields(lines[0]))
	if len(headers) == 0 {
		return nil, nil
	}

	var rows []RawRow
	for _, line := range lines[1:] {
		fields := splitFields(line)
		row := make(RawRow, len(headers))
		for pos, header := range index {
			if pos >= len(fields) {
				continue
			}
			row[header] = fields[pos]
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// ExtractWorkbook reads the first sheet of an xlsx document. Row 0 is the
// header row; remaining rows are aligned positionally to the headers.
// Fewer than two rows yields an empty result rather than an error.
func ExtractWorkbook(content []byte) ([]string, []RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(grid) < 2 {
		return nil, nil, nil
	}

	var headerFields []string
	for _, cell := range grid[0] {
		headerFields = append(headerFields, strings.TrimSpace(cell))
	}
	headers, index := buildHeaderIndex(headerFields)
	if len(headers) == 0 {
		return nil, nil, nil
	}

	var rows []RawRow
	for _, cells := range grid[1:] {
		if isEmptyRow(cells) {
			continue
		}
		row := make(RawRow, len(headers))
		for pos, header := range index {
			if pos >= len(cells) {
				continue
			}
			row[header] = cells[pos]
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// splitFields splits one CSV line on commas that are not enclosed in a
// double-quote run. A comma is a separator when the remainder of the line
// holds an even number of quote characters; this counting lookahead covers
// one layer of field quoting without a full quote-state parser.
func splitFields(line string) []string {
	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] != ',' {
			continue
		}
		if strings.Count(line[i+1:], `"`)%2 == 0 {
			fields = append(fields, cleanField(line[start:i]))
			start = i + 1
		}
	}
	fields = append(fields, cleanField(line[start:]))
	return fields
}

// cleanField trims whitespace and strips one layer of wrapping quotes.
func cleanField(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && field[0] == '"' && field[len(field)-1] == '"' {
		field = field[1 : len(field)-1]
	}
	return field
}

// buildHeaderIndex maps column position to header name, keeping the first
// occurrence of a duplicated header and ignoring unnamed columns. Produced
// tables never carry duplicate headers.
func buildHeaderIndex(fields []string) ([]string, map[int]string) {
	var headers []string
	index := make(map[int]string, len(fields))
	seen := make(map[string]bool, len(fields))
	for pos, field := range fields {
		name := strings.TrimSpace(field)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		headers = append(headers, name)
		index[pos] = name
	}
	return headers, index
}

func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
