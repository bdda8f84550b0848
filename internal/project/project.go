// Package project persists a table and its view configuration as a JSON
// project document. The engine's obligation is shape fidelity: data and
// config round-trip through this document without loss.
package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"gridcli/pkg/contracts/domain"
)

const (
	// Version is bumped only on incompatible document changes.
	Version = 1
	// DocType guards against loading unrelated JSON files.
	DocType = "gridcli-project"
)

// File is the on-disk project document.
type File struct {
	Version int               `json:"version" validate:"required,eq=1"`
	Type    string            `json:"type" validate:"required,eq=gridcli-project"`
	Data    domain.Table      `json:"data"`
	Config  domain.ViewConfig `json:"config"`
	SavedAt int64             `json:"savedAt"` // epoch millis
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Save writes the table and config to path as a project document.
func Save(path string, table *domain.Table, cfg domain.ViewConfig) error {
	doc := File{
		Version: Version,
		Type:    DocType,
		Data:    *table,
		Config:  cfg,
		SavedAt: time.Now().UnixMilli(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	slog.Info("Saved project",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))
	return nil
}

// Load reads a project document and returns its table and config. The
// document's version and type are validated before anything is handed back.
func Load(path string) (*domain.Table, domain.ViewConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ViewConfig{}, fmt.Errorf("failed to read project file: %w", err)
	}

	var doc File
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domain.ViewConfig{}, fmt.Errorf("failed to decode project file: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, domain.ViewConfig{}, fmt.Errorf("not a valid project file: %w", err)
	}

	table := doc.Data
	if table.Headers == nil {
		table.Headers = []string{}
	}
	if table.Rows == nil {
		table.Rows = []domain.Record{}
	}
	slog.Info("Loaded project",
		slog.String("path", path),
		slog.String("source", table.SourceName),
		slog.Int("rows", len(table.Rows)))
	return &table, doc.Config, nil
}
