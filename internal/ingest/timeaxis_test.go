package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTimeAxis(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		wantAxis string
		wantOK   bool
	}{
		{"german datum", []string{"Datum", "Wert"}, "Datum", true},
		{"english date", []string{"Value", "Date"}, "Date", true},
		{"created keyword wins over value", []string{"Value", "Created_At"}, "Created_At", true},
		{"substring match", []string{"Zeitstempel", "Messwert"}, "Zeitstempel", true},
		{"first match in header order wins", []string{"Timestamp", "Date"}, "Timestamp", true},
		{"index counts as chronological", []string{"Index", "A"}, "Index", true},
		{"case insensitive", []string{"DATE"}, "DATE", true},
		{"no axis", []string{"Name", "Amount"}, "", false},
		{"empty headers", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axis, ok := DetectTimeAxis(tt.headers)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAxis, axis)
		})
	}
}
