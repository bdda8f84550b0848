package domain

import (
	"github.com/go-playground/validator/v10"
)

// DateRange is an inclusive date window over the axis column. Empty strings
// mean unbounded on that side; non-empty values are YYYY-MM-DD.
type DateRange struct {
	Start string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

// ViewConfig is the display configuration handed to rendering and export
// collaborators alongside a Table. The ingestion core only guarantees its
// shape round-trips through project persistence without loss.
type ViewConfig struct {
	AxisColumn      string    `json:"axisColumn"`
	ActiveSeries    []string  `json:"activeSeries"`
	ShowGrid        bool      `json:"showGrid"`
	SmoothingWindow int       `json:"smoothingWindow" validate:"min=0"`
	LineWidth       float64   `json:"lineWidth" validate:"min=0"`
	Range           DateRange `json:"range"`
}

// DefaultViewConfig returns the configuration applied to a freshly ingested
// table: axis from detection (or first header), every non-axis column active.
func DefaultViewConfig(t *Table) ViewConfig {
	cfg := ViewConfig{
		ShowGrid:        true,
		SmoothingWindow: 0,
		LineWidth:       2,
	}
	if t.AxisHeader != "" {
		cfg.AxisColumn = t.AxisHeader
	} else if len(t.Headers) > 0 {
		cfg.AxisColumn = t.Headers[0]
	}
	for _, h := range t.Headers {
		if h != cfg.AxisColumn {
			cfg.ActiveSeries = append(cfg.ActiveSeries, h)
		}
	}
	return cfg
}

// Validate checks the struct tags with go-playground/validator.
func (c *ViewConfig) Validate() error {
	return validate.Struct(c)
}

var validate = validator.New(validator.WithRequiredStructEnabled())
