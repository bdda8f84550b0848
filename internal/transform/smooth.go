package transform

import (
	"math"

	"gridcli/pkg/contracts/domain"
)

// Smooth applies a moving average of width window to the selected columns
// and returns a display view; the input rows are left untouched. A window
// of 1 or less is the identity. The window for row i is rows[max(0,i-w+1)..i],
// left-anchored and shrinking near the start, so the first rows average
// fewer than w values and no row looks ahead.
//
// A non-numeric or absent cell contributes 0 to the window's sum but still
// counts toward its divisor. That asymmetry is the long-observed behavior
// of this transform, kept as-is rather than silently corrected; see the
// package tests for the documented discrepancy.
func Smooth(rows []domain.Record, columns []string, window int) []domain.Record {
	if window <= 1 || len(rows) == 0 || len(columns) == 0 {
		out := make([]domain.Record, len(rows))
		copy(out, rows)
		return out
	}

	out := make([]domain.Record, len(rows))
	for i, row := range rows {
		smoothed := row.Clone()
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		for _, col := range columns {
			sum := 0.0
			count := 0
			for j := lo; j <= i; j++ {
				if cell, ok := rows[j][col]; ok && cell.Kind() == domain.CellNumeric {
					sum += cell.Number()
				}
				count++
			}
			smoothed[col] = domain.Numeric(round2(sum / float64(count)))
		}
		out[i] = smoothed
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
