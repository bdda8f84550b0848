// Command gridcli ingests tabular files into a canonical table and writes
// reports or project files from it.
//
// Ingest two CSVs, merge them, and export the January window:
//
//	gridcli -out report.xlsx -start 2024-01-01 -end 2024-01-31 a.csv b.csv
//
// Ingest a directory of files and save a project:
//
//	gridcli -dir ./data -save project.json
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"gridcli/internal/config"
	"gridcli/internal/exporter"
	"gridcli/internal/infrastructure"
	"gridcli/internal/ingest"
	"gridcli/internal/merge"
	"gridcli/internal/project"
	"gridcli/internal/transform"
	"gridcli/pkg/contracts/domain"
)

func main() {
	dir := flag.String("dir", "", "ingest every .csv/.xlsx file in this directory")
	out := flag.String("out", "", "report output path (.csv or .xlsx)")
	start := flag.String("start", "", "inclusive range start (YYYY-MM-DD)")
	end := flag.String("end", "", "inclusive range end (YYYY-MM-DD)")
	smooth := flag.Int("smooth", 0, "moving-average window size (0/1 = off)")
	columns := flag.String("columns", "", "comma-separated columns to smooth (default: all non-axis)")
	strict := flag.Bool("strict", false, "reject merging files that share no columns")
	savePath := flag.String("save", "", "save table and view config as a project file")
	loadPath := flag.String("load", "", "load a previously saved project instead of ingesting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		defaults := config.Default()
		cfg = &defaults
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	table, viewCfg, err := buildTable(ctx, cfg, *loadPath, *dir, *strict, flag.Args())
	if err != nil {
		logger.Error("Failed to build table", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Printf("Table ready: %d columns, %d rows\n", len(table.Headers), len(table.Rows))
	if table.HasTimeAxis {
		fmt.Printf("Time axis: %s\n", table.AxisHeader)
	}

	viewCfg.Range = domain.DateRange{Start: *start, End: *end}
	viewCfg.SmoothingWindow = *smooth
	if err := viewCfg.Validate(); err != nil {
		logger.Error("Invalid view options", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows := table.Rows
	if *start != "" || *end != "" {
		rows = transform.FilterRange(rows, viewCfg.AxisColumn, *start, *end)
		fmt.Printf("Range filter kept %d of %d rows\n", len(rows), len(table.Rows))
	}
	if *smooth > 1 {
		targets := viewCfg.ActiveSeries
		if *columns != "" {
			targets = strings.Split(*columns, ",")
		}
		rows = transform.Smooth(rows, targets, *smooth)
	}

	if *out != "" {
		if err := writeReport(*out, table, rows); err != nil {
			logger.Error("Failed to write report", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Wrote report: %s\n", *out)
	}

	if *savePath != "" {
		if err := project.Save(*savePath, table, viewCfg); err != nil {
			logger.Error("Failed to save project", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Saved project: %s\n", *savePath)
	}
}

// buildTable produces the working table either from a saved project or by
// ingesting and merging the given files. Files are parsed concurrently;
// merging stays sequential in argument order so results are deterministic.
func buildTable(ctx context.Context, cfg *config.Config, loadPath, dir string, strict bool, args []string) (*domain.Table, domain.ViewConfig, error) {
	if loadPath != "" {
		return project.Load(loadPath)
	}

	paths := append([]string{}, args...)
	if dir != "" {
		discovered, err := ingest.DiscoverFiles(dir)
		if err != nil {
			return nil, domain.ViewConfig{}, err
		}
		paths = append(paths, discovered...)
	}
	if len(paths) == 0 {
		return nil, domain.ViewConfig{}, fmt.Errorf("no input files; pass file arguments, -dir, or -load")
	}
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Size() > cfg.Ingest.MaxFileSize {
			return nil, domain.ViewConfig{}, fmt.Errorf("%s exceeds the %d byte size limit", filepath.Base(p), cfg.Ingest.MaxFileSize)
		}
	}

	tables := make([]*domain.Table, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			t, err := ingest.ParseFile(gctx, path)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.ViewConfig{}, err
	}

	table := tables[0]
	strictOpt := merge.Options{RequireOverlap: strict || cfg.Ingest.StrictMerge}
	for _, incoming := range tables[1:] {
		merged, err := merge.Tables(table, incoming, strictOpt)
		if err != nil {
			return nil, domain.ViewConfig{}, err
		}
		table = merged
	}
	return table, domain.DefaultViewConfig(table), nil
}

func writeReport(path string, table *domain.Table, rows []domain.Record) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return exporter.WriteWorkbook(path, table, rows)
	case ".csv":
		return exporter.WriteCSV(path, table, rows)
	default:
		return fmt.Errorf("unsupported report format %q (use .csv or .xlsx)", filepath.Ext(path))
	}
}
