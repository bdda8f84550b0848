package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gridcli/pkg/contracts/domain"
)

// datePattern is one entry in the ordered date recognition list. New formats
// are added by appending an entry, never by editing existing branches.
type datePattern struct {
	name string
	re   *regexp.Regexp
}

// Checked in priority order; first match wins.
var datePatterns = []datePattern{
	{name: "iso", re: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([T ].*)?$`)},
	{name: "dotted", re: regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`)},
	{name: "slashed", re: regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)},
}

// isDateLike reports whether s matches one of the recognized date patterns.
// Date-shaped strings must stay text: "2024-01-02" never becomes a number.
func isDateLike(s string) bool {
	for _, p := range datePatterns {
		if p.re.MatchString(s) {
			return true
		}
	}
	return false
}

// CoerceRows classifies every raw cell into a Numeric or Text cell. Empty
// and absent values are omitted from the record entirely; rows that end up
// with zero present keys are dropped.
func CoerceRows(headers []string, raw []RawRow) []domain.Record {
	var rows []domain.Record
	for _, rawRow := range raw {
		record := make(domain.Record, len(rawRow))
		for _, header := range headers {
			value, present := rawRow[header]
			if !present {
				continue
			}
			cell, ok := coerceValue(value)
			if !ok {
				continue
			}
			record[header] = cell
		}
		if len(record) == 0 {
			continue
		}
		rows = append(rows, record)
	}
	return rows
}

// coerceValue converts one raw value into a cell. ok is false when the
// value is absent or empty and the key must be omitted.
func coerceValue(value any) (domain.Cell, bool) {
	switch v := value.(type) {
	case nil:
		return domain.Cell{}, false
	case float64:
		return domain.Numeric(v), true
	case int:
		return domain.Numeric(float64(v)), true
	case int64:
		return domain.Numeric(float64(v)), true
	case string:
		s := cleanField(v)
		if s == "" {
			return domain.Cell{}, false
		}
		if isDateLike(s) {
			return domain.Text(s), true
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return domain.Numeric(n), true
		}
		return domain.Text(s), true
	default:
		s := strings.TrimSpace(fmt.Sprint(value))
		if s == "" {
			return domain.Cell{}, false
		}
		return domain.Text(s), true
	}
}
