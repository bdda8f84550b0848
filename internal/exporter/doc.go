// Package exporter writes report files from a canonical table and an
// already-filtered row view. CSV output carries a UTF-8 BOM and 2-decimal
// numeric formatting; xlsx output is a styled single-sheet workbook.
package exporter
