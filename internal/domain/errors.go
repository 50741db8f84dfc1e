package domain

import "errors"

var (
	// Source errors
	ErrSourceUnavailable = errors.New("tabular data source unavailable")
	ErrTableNotFound     = errors.New("source table not found")

	// Snapshot errors
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// Export errors
	ErrNoData = errors.New("no data to export")
)
