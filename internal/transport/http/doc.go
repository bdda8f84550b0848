// Package http exposes the ingestion engine over a small chi-based REST
// surface: upload a file to create a canonical table, merge further files
// into it, and read derived row views (range-filtered, smoothed) without
// ever mutating the stored snapshot.
package http
