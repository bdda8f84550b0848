// Package merge combines two canonical tables into a new one: header
// union, row concatenation, and a re-sort when a time axis survives.
package merge

import (
	"fmt"
	"log/slog"
	"time"

	"gridcli/internal/ingest"
	"gridcli/pkg/contracts/domain"
)

// Options controls the merge policy. Two policies exist in the lineage of
// this system: an unconditional union merge and a strict variant that
// rejects structurally unrelated inputs. Union is the default; strictness
// is an explicit opt-in.
type Options struct {
	// RequireOverlap rejects an incoming table that shares zero headers
	// with the existing one instead of widening the table.
	RequireOverlap bool
}

// Error is the conflict raised in strict mode; its message is surfaced to
// the user verbatim.
type Error struct {
	Existing string
	Incoming string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot merge %q into %q: no shared columns", e.Incoming, e.Existing)
}

// Tables merges incoming into existing and returns a new table; neither
// input is mutated. Headers keep the existing order followed by incoming
// headers in first-appearance order. Rows are concatenated, then re-sorted
// when the axis header is still present. The receiving table's identity
// (SourceName) is preserved.
func Tables(existing, incoming *domain.Table, opts Options) (*domain.Table, error) {
	if opts.RequireOverlap && !incoming.Empty() && overlap(existing.Headers, incoming.Headers) == 0 {
		return nil, &Error{Existing: existing.SourceName, Incoming: incoming.SourceName}
	}

	merged := &domain.Table{
		ID:         existing.ID,
		SourceName: existing.SourceName,
		IngestedAt: time.Now().UnixMilli(),
	}

	merged.Headers = append([]string{}, existing.Headers...)
	seen := make(map[string]bool, len(merged.Headers))
	for _, h := range merged.Headers {
		seen[h] = true
	}
	for _, h := range incoming.Headers {
		if !seen[h] {
			seen[h] = true
			merged.Headers = append(merged.Headers, h)
		}
	}

	// Present keys pass through unchanged; no key is invented for headers
	// a row lacks.
	merged.Rows = make([]domain.Record, 0, len(existing.Rows)+len(incoming.Rows))
	merged.Rows = append(merged.Rows, existing.Rows...)
	merged.Rows = append(merged.Rows, incoming.Rows...)

	merged.HasTimeAxis = existing.HasTimeAxis || incoming.HasTimeAxis
	merged.AxisHeader = existing.AxisHeader
	if merged.AxisHeader == "" {
		merged.AxisHeader = incoming.AxisHeader
	}
	if merged.HasTimeAxis && merged.AxisHeader != "" && hasHeader(merged.Headers, merged.AxisHeader) {
		merged.Rows = ingest.SortByAxis(merged.Rows, merged.AxisHeader)
	}

	slog.Info("Merged tables",
		slog.String("existing", existing.SourceName),
		slog.String("incoming", incoming.SourceName),
		slog.Int("headers", len(merged.Headers)),
		slog.Int("rows", len(merged.Rows)))
	return merged, nil
}

func overlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, h := range a {
		set[h] = true
	}
	n := 0
	for _, h := range b {
		if set[h] {
			n++
		}
	}
	return n
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
