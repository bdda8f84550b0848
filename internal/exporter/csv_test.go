package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcli/pkg/contracts/domain"
)

func reportTable() *domain.Table {
	return &domain.Table{
		Headers: []string{"Datum", "Wert", "Note"},
		Rows: []domain.Record{
			{"Datum": domain.Text("2024-01-01"), "Wert": domain.Numeric(13.4), "Note": domain.Text("ok")},
			{"Datum": domain.Text("2024-01-02"), "Wert": domain.Numeric(5)},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "out.csv")
	table := reportTable()

	require.NoError(t, WriteCSV(path, table, table.Rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "\xEF\xBB\xBF"), "BOM for Excel compatibility")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(content, "\xEF\xBB\xBF")))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Datum", "Wert", "Note"}, records[0])
	assert.Equal(t, []string{"2024-01-01", "13.40", "ok"}, records[1], "numeric cells get 2 decimals")
	assert.Equal(t, []string{"2024-01-02", "5.00", ""}, records[2], "absent cells export as empty fields")
}

func TestWriteCSVFilteredView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	table := reportTable()

	// export receives an already-filtered row array
	require.NoError(t, WriteCSV(path, table, table.Rows[1:]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "13.40", formatCell(domain.Numeric(13.4)))
	assert.Equal(t, "5.00", formatCell(domain.Numeric(5)))
	assert.Equal(t, "2024-01-01", formatCell(domain.Text("2024-01-01")))
}
