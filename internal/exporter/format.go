package exporter

import (
	"fmt"

	"gridcli/pkg/contracts/domain"
)

// formatCell renders a cell for report output. Numeric values always get
// exactly 2 decimal places so 13.4 appears as 13.40 across a column.
func formatCell(c domain.Cell) string {
	if c.Kind() == domain.CellNumeric {
		return fmt.Sprintf("%.2f", c.Number())
	}
	return c.Text()
}
