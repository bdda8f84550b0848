// Package transform derives read-only display views from an already
// normalized table: date-range filtering and moving-average smoothing.
// Every function returns fresh rows; the stored table is never mutated.
package transform

import (
	"regexp"

	"gridcli/pkg/contracts/domain"
)

// isoDateShape covers the normalized axis values lexical comparison is
// valid for. Filtering never constrains non-date axes.
var isoDateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// FilterRange returns the rows whose axis value falls inside the inclusive
// [start, end] window. Bounds are YYYY-MM-DD strings; an empty bound is
// unbounded on that side. Rows whose axis cell is not an ISO-shaped date
// string pass through: categorical axes are never filtered. The comparison
// is lexical, which is exact for ISO-shaped strings and must not be applied
// to any other date text.
func FilterRange(rows []domain.Record, axis, start, end string) []domain.Record {
	out := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		cell, present := row[axis]
		if !present || cell.Kind() != domain.CellText || !isoDateShape.MatchString(cell.Text()) {
			out = append(out, row)
			continue
		}
		v := cell.Text()
		if start != "" && v < start {
			continue
		}
		if end != "" && v > end {
			continue
		}
		out = append(out, row)
	}
	return out
}
