package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcli/internal/shared/testutil"
)

func TestExtractCSV(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantHeaders []string
		wantRows    []RawRow
	}{
		{
			name:        "basic",
			content:     "Datum,Wert\n2024-01-02,5\n2024-01-01,3\n",
			wantHeaders: []string{"Datum", "Wert"},
			wantRows: []RawRow{
				{"Datum": "2024-01-02", "Wert": "5"},
				{"Datum": "2024-01-01", "Wert": "3"},
			},
		},
		{
			name:        "crlf line endings",
			content:     "A,B\r\n1,2\r\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []RawRow{{"A": "1", "B": "2"}},
		},
		{
			name:        "quoted field with comma",
			content:     "Name,Note\nx,\"a, b\"\n",
			wantHeaders: []string{"Name", "Note"},
			wantRows:    []RawRow{{"Name": "x", "Note": "a, b"}},
		},
		{
			name:        "blank lines skipped entirely",
			content:     "A,B\n1,2\n   \n\n3,4\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []RawRow{{"A": "1", "B": "2"}, {"A": "3", "B": "4"}},
		},
		{
			name:        "short row leaves trailing columns absent",
			content:     "A,B,C\n1,2\n",
			wantHeaders: []string{"A", "B", "C"},
			wantRows:    []RawRow{{"A": "1", "B": "2"}},
		},
		{
			name:        "duplicate header keeps first occurrence",
			content:     "A,B,A\n1,2,3\n",
			wantHeaders: []string{"A", "B"},
			wantRows:    []RawRow{{"A": "1", "B": "2"}},
		},
		{
			name:        "header only is empty",
			content:     "A,B\n",
			wantHeaders: nil,
			wantRows:    nil,
		},
		{
			name:        "single line is empty",
			content:     "just one line",
			wantHeaders: nil,
			wantRows:    nil,
		},
		{
			name:        "empty content",
			content:     "",
			wantHeaders: nil,
			wantRows:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers, rows := ExtractCSV(tt.content)
			assert.Equal(t, tt.wantHeaders, headers)
			assert.Equal(t, tt.wantRows, rows)
		})
	}
}

func TestExtractCSVHeadersUnique(t *testing.T) {
	headers, _ := ExtractCSV("X,Y,X,Y,Z\n1,2,3,4,5\n")
	seen := make(map[string]bool)
	for _, h := range headers {
		assert.False(t, seen[h], "duplicate header %q", h)
		seen[h] = true
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"wrapping quotes stripped once", `"a","b"`, []string{"a", "b"}},
		{"whitespace trimmed", " a , b ", []string{"a", "b"}},
		{"trailing empty field", "a,b,", []string{"a", "b", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitFields(tt.line))
		})
	}
}

func TestExtractWorkbook(t *testing.T) {
	content := testutil.WorkbookBytes(t, [][]string{
		{"Datum", "Wert"},
		{"2024-01-01", "3"},
		{"", ""},
		{"2024-01-02", "5"},
	})

	headers, rows, err := ExtractWorkbook(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Datum", "Wert"}, headers)
	require.Len(t, rows, 2, "the empty row is skipped")
	assert.Equal(t, "3", rows[0]["Wert"])
	assert.Equal(t, "2024-01-02", rows[1]["Datum"])
}

func TestExtractWorkbookHeaderOnly(t *testing.T) {
	content := testutil.WorkbookBytes(t, [][]string{{"A", "B"}})

	headers, rows, err := ExtractWorkbook(content)
	require.NoError(t, err)
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}

func TestExtractWorkbookGarbage(t *testing.T) {
	_, _, err := ExtractWorkbook([]byte("not an xlsx file"))
	assert.Error(t, err)
}
