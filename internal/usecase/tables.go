package usecase

import (
	"context"
	"errors"

	"github.com/iho/shopledger/internal/sheet"
)

var (
	// ErrSnapshotsDisabled is returned for as-of queries when no snapshot
	// store is configured.
	ErrSnapshotsDisabled = errors.New("snapshot store is not configured")
)

// resolveTables returns the live table set, or a stored snapshot's tables
// when an as-of date is given.
func resolveTables(ctx context.Context, source TableSource, snapshots SnapshotRepository, asOf string) (*sheet.TableSet, error) {
	if asOf == "" {
		return source.FetchAll(ctx)
	}
	if snapshots == nil {
		return nil, ErrSnapshotsDisabled
	}
	snap, err := snapshots.GetByDate(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return snap.Tables, nil
}
