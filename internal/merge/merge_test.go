package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcli/pkg/contracts/domain"
)

func textRow(pairs ...string) domain.Record {
	r := make(domain.Record)
	for i := 0; i < len(pairs); i += 2 {
		r[pairs[i]] = domain.Text(pairs[i+1])
	}
	return r
}

func table(source string, headers []string, rows ...domain.Record) *domain.Table {
	return &domain.Table{
		ID:         "id-" + source,
		SourceName: source,
		Headers:    headers,
		Rows:       rows,
	}
}

func TestUnionMergeWidensHeaders(t *testing.T) {
	existing := table("a.csv", []string{"Datum", "A"},
		textRow("Datum", "2024-01-01", "A", "1"))
	existing.HasTimeAxis = true
	existing.AxisHeader = "Datum"

	incoming := table("b.csv", []string{"Datum", "B"},
		textRow("Datum", "2024-01-02", "B", "2"))
	incoming.HasTimeAxis = true
	incoming.AxisHeader = "Datum"

	merged, err := Tables(existing, incoming, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Datum", "A", "B"}, merged.Headers)
	require.Len(t, merged.Rows, 2)

	// the incoming row gains no "A" key
	_, present := merged.Rows[1]["A"]
	assert.False(t, present)

	assert.Equal(t, "a.csv", merged.SourceName, "receiving table keeps its identity")
	assert.True(t, merged.HasTimeAxis)
}

func TestMergeResortsByAxis(t *testing.T) {
	existing := table("a.csv", []string{"Datum", "A"},
		textRow("Datum", "2024-01-05", "A", "1"))
	existing.HasTimeAxis = true
	existing.AxisHeader = "Datum"

	incoming := table("b.csv", []string{"Datum", "B"},
		textRow("Datum", "2024-01-01", "B", "2"))
	incoming.HasTimeAxis = true
	incoming.AxisHeader = "Datum"

	merged, err := Tables(existing, incoming, Options{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", merged.Rows[0]["Datum"].Text())
	assert.Equal(t, "2024-01-05", merged.Rows[1]["Datum"].Text())
}

func TestMergeWithEmptyTableIsIdentity(t *testing.T) {
	existing := table("a.csv", []string{"Datum", "A"},
		textRow("Datum", "2024-01-01", "A", "1"),
		textRow("Datum", "2024-01-02", "A", "2"))
	existing.HasTimeAxis = true
	existing.AxisHeader = "Datum"
	existing.IngestedAt = 1

	empty := &domain.Table{Headers: []string{}, Rows: []domain.Record{}}

	merged, err := Tables(existing, empty, Options{})
	require.NoError(t, err)

	assert.Equal(t, existing.Headers, merged.Headers)
	assert.Equal(t, existing.Rows, merged.Rows)
	assert.Equal(t, existing.SourceName, merged.SourceName)
	assert.Equal(t, existing.HasTimeAxis, merged.HasTimeAxis)
	assert.Greater(t, merged.IngestedAt, existing.IngestedAt, "ingestedAt is refreshed")
}

func TestMergeWithEmptyTableStrictMode(t *testing.T) {
	existing := table("a.csv", []string{"A"}, textRow("A", "1"))
	empty := &domain.Table{Headers: []string{}, Rows: []domain.Record{}}

	_, err := Tables(existing, empty, Options{RequireOverlap: true})
	assert.NoError(t, err, "an empty incoming table is not a structural conflict")
}

func TestStrictModeRejectsNoOverlap(t *testing.T) {
	existing := table("a.csv", []string{"Datum", "A"}, textRow("Datum", "2024-01-01"))
	incoming := table("b.csv", []string{"X", "Y"}, textRow("X", "1"))

	_, err := Tables(existing, incoming, Options{RequireOverlap: true})
	require.Error(t, err)

	var mergeErr *Error
	require.ErrorAs(t, err, &mergeErr)
	assert.Contains(t, mergeErr.Error(), "no shared columns")
}

func TestDefaultModeAllowsNoOverlap(t *testing.T) {
	existing := table("a.csv", []string{"A"}, textRow("A", "1"))
	incoming := table("b.csv", []string{"B"}, textRow("B", "2"))

	merged, err := Tables(existing, incoming, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, merged.Headers)
	assert.Len(t, merged.Rows, 2)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	existing := table("a.csv", []string{"A"}, textRow("A", "1"))
	incoming := table("b.csv", []string{"B"}, textRow("B", "2"))

	_, err := Tables(existing, incoming, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A"}, existing.Headers)
	assert.Len(t, existing.Rows, 1)
	assert.Equal(t, []string{"B"}, incoming.Headers)
}

func TestMergeAxisGoneLeavesConcatenationOrder(t *testing.T) {
	// existing lost its axis column name but still claims a time axis;
	// the axis header is absent from the union so no re-sort happens
	existing := &domain.Table{
		SourceName:  "a.csv",
		Headers:     []string{"A"},
		Rows:        []domain.Record{textRow("A", "2")},
		HasTimeAxis: true,
		AxisHeader:  "Datum",
	}
	incoming := table("b.csv", []string{"A"}, textRow("A", "1"))

	merged, err := Tables(existing, incoming, Options{})
	require.NoError(t, err)
	assert.Equal(t, "2", merged.Rows[0]["A"].Text())
	assert.Equal(t, "1", merged.Rows[1]["A"].Text())
}
