package ingest

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"gridcli/pkg/contracts/domain"
)

// timestampParser is one entry in the ordered canonical-timestamp strategy
// list. New formats are appended, existing entries are never edited.
type timestampParser struct {
	name  string
	match func(s string) bool
	parse func(s string) (float64, bool)
}

var timestampParsers = []timestampParser{
	{
		// YYYY-MM-DD with optional T/space time part. Components are built
		// into a local-midnight date explicitly so a generic parser cannot
		// introduce UTC/local drift; any time-of-day part is dropped.
		name:  "iso",
		match: func(s string) bool { return datePatterns[0].re.MatchString(s) },
		parse: func(s string) (float64, bool) {
			parts := strings.FieldsFunc(s, func(r rune) bool {
				return r == '-' || r == 'T' || r == ' '
			})
			if len(parts) < 3 {
				return 0, false
			}
			return localMidnight(parts[0], parts[1], parts[2])
		},
	},
	{
		name:  "dotted",
		match: func(s string) bool { return datePatterns[1].re.MatchString(s) },
		parse: func(s string) (float64, bool) {
			parts := strings.Split(s, ".")
			if len(parts) != 3 {
				return 0, false
			}
			return localMidnight(parts[2], parts[1], parts[0])
		},
	},
	{
		name:  "generic",
		match: func(s string) bool { return true },
		parse: func(s string) (float64, bool) {
			for _, layout := range genericLayouts {
				if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
					return float64(t.UnixMilli()), true
				}
			}
			return 0, false
		},
	},
}

var genericLayouts = []string{
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02 Jan 2006",
	"Jan 2, 2006",
}

func localMidnight(year, month, day string) (float64, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	return float64(t.UnixMilli()), true
}

// canonicalTimestamp derives the sortable epoch value for one axis cell.
// Numeric cells are used as-is (already-epoch or spreadsheet-serial values
// are not reinterpreted). Unparsable or absent values yield 0, which sorts
// such rows to the earliest position; this imprecision is tolerated rather
// than surfaced as an error.
func canonicalTimestamp(record domain.Record, axis string) float64 {
	cell, present := record[axis]
	if !present {
		return 0
	}
	if cell.Kind() == domain.CellNumeric {
		return cell.Number()
	}
	s := cell.Text()
	for _, p := range timestampParsers {
		if !p.match(s) {
			continue
		}
		if ts, ok := p.parse(s); ok {
			return ts
		}
		// A matched pattern that fails to parse falls through to 0, not to
		// the next strategy; the match already claimed the shape.
		return 0
	}
	return 0
}

// SortByAxis returns the rows stably sorted ascending by the canonical
// timestamp of the axis column. Rows with equal timestamps, including the
// unparsable 0 fallback, keep their relative input order. The input slice
// is not mutated.
func SortByAxis(rows []domain.Record, axis string) []domain.Record {
	if axis == "" || len(rows) < 2 {
		out := make([]domain.Record, len(rows))
		copy(out, rows)
		return out
	}
	keyed := make([]struct {
		row domain.Record
		ts  float64
	}, len(rows))
	for i, row := range rows {
		keyed[i].row = row
		keyed[i].ts = canonicalTimestamp(row, axis)
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].ts < keyed[j].ts
	})
	out := make([]domain.Record, len(rows))
	for i := range keyed {
		out[i] = keyed[i].row
	}
	return out
}
