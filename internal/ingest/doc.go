// Package ingest turns heterogeneous tabular files into the canonical
// normalized Table consumed by every downstream collaborator.
//
// # Pipeline
//
// Ingestion of one file runs four stages in order:
//
//  1. Extraction: delimited text or the first sheet of a workbook becomes
//     headers plus untyped raw rows (extractor.go)
//  2. Coercion: each raw cell is classified as Numeric or Text, date-shaped
//     strings staying text; empty values are omitted and empty rows dropped
//     (coercer.go)
//  3. Axis detection: a keyword scan over the headers decides whether a
//     chronological axis exists (timeaxis.go)
//  4. Sorting: rows are stably ordered ascending by the axis's canonical
//     timestamp (sorter.go)
//
// # Usage
//
//	table, err := ingest.ParseFile(ctx, "sales.csv")
//	if err != nil {
//	    return err
//	}
//
// # Error handling
//
// Only an unreadable or undecodable file fails the ingestion. Per-cell
// anomalies are absorbed: unclassifiable values stay text, unparsable axis
// values sort to the earliest position, and an input with fewer than two
// rows yields an empty table instead of an error.
package ingest
