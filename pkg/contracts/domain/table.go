package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// CellKind discriminates the two value kinds a Cell can hold.
type CellKind int

const (
	CellText CellKind = iota
	CellNumeric
)

// Cell is a single typed value in a Record. It is either Numeric (a finite
// float64) or Text. Date-like values stay Text in their recognized pattern;
// they are never reinterpreted as numbers.
type Cell struct {
	kind CellKind
	num  float64
	str  string
}

// Numeric returns a numeric cell. Numeric cells are always finite: NaN and
// infinities are stored as their text form instead.
func Numeric(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{kind: CellText, str: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return Cell{kind: CellNumeric, num: v}
}

// Text returns a text cell holding s verbatim.
func Text(s string) Cell {
	return Cell{kind: CellText, str: s}
}

// Kind reports whether the cell is numeric or text.
func (c Cell) Kind() CellKind { return c.kind }

// Number returns the numeric value; zero for text cells.
func (c Cell) Number() float64 { return c.num }

// Text returns the text value; empty for numeric cells.
func (c Cell) Text() string { return c.str }

// String renders the cell for display and export.
func (c Cell) String() string {
	if c.kind == CellNumeric {
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	}
	return c.str
}

// MarshalJSON serializes a cell as a bare JSON number or string, matching
// the canonical table shape consumed by rendering and persistence.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.kind == CellNumeric {
		return json.Marshal(c.num)
	}
	return json.Marshal(c.str)
}

// UnmarshalJSON accepts a bare JSON number or string.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Numeric(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Text(s)
	return nil
}

// Record maps column name to cell. A column absent from the map means the
// row has no value there; absent keys are never materialized with a default.
type Record map[string]Cell

// Clone returns a shallow copy of the record (cells are values).
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is the canonical normalized dataset produced by ingestion or merge.
// Tables are treated as immutable values: every transform returns a fresh
// Table or row slice and never mutates one a caller may still hold.
type Table struct {
	ID          string   `json:"id,omitempty"`
	Headers     []string `json:"headers"`
	Rows        []Record `json:"rows"`
	SourceName  string   `json:"sourceName,omitempty"`
	IngestedAt  int64    `json:"ingestedAt,omitempty"` // epoch millis
	HasTimeAxis bool     `json:"hasTimeAxis"`
	AxisHeader  string   `json:"axisHeader,omitempty"`
}

// Empty reports whether the table carries no data rows.
func (t *Table) Empty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// HasHeader reports whether name is one of the table's columns.
func (t *Table) HasHeader(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}
