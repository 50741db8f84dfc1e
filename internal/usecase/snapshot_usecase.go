package usecase

import (
	"context"
	"time"

	"github.com/iho/shopledger/internal/sheet"
)

// Snapshot is one persisted point-in-time copy of the five source tables,
// keyed by capture date. Loading one replays the normal reconciliation
// pipeline over the stored rows.
type Snapshot struct {
	ID           string
	SnapshotDate string
	CreatedAt    time.Time
	Tables       *sheet.TableSet
}

// SnapshotMeta is the listing view of a snapshot.
type SnapshotMeta struct {
	ID           string
	SnapshotDate string
	CreatedAt    time.Time
	RowCount     int
}

// SnapshotUseCase captures and lists table snapshots.
type SnapshotUseCase struct {
	source TableSource
	repo   SnapshotRepository
	idGen  IDGenerator
}

// NewSnapshotUseCase creates a new SnapshotUseCase.
func NewSnapshotUseCase(source TableSource, repo SnapshotRepository, idGen IDGenerator) *SnapshotUseCase {
	return &SnapshotUseCase{source: source, repo: repo, idGen: idGen}
}

// Capture fetches the current tables and stores them under today's date.
// Capturing twice on one date replaces the earlier copy, so a rerun always
// leaves the freshest data for that date.
func (uc *SnapshotUseCase) Capture(ctx context.Context) (*SnapshotMeta, error) {
	if uc.repo == nil {
		return nil, ErrSnapshotsDisabled
	}

	ts, err := uc.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:           uc.idGen.Generate(),
		SnapshotDate: ts.FetchedAt.Format("2006-01-02"),
		CreatedAt:    ts.FetchedAt,
		Tables:       ts,
	}
	if err := uc.repo.Save(ctx, snap); err != nil {
		return nil, err
	}

	return &SnapshotMeta{
		ID:           snap.ID,
		SnapshotDate: snap.SnapshotDate,
		CreatedAt:    snap.CreatedAt,
		RowCount:     tableSetRows(ts),
	}, nil
}

// List returns stored snapshots, newest first.
func (uc *SnapshotUseCase) List(ctx context.Context, limit, offset int) ([]SnapshotMeta, error) {
	if uc.repo == nil {
		return nil, ErrSnapshotsDisabled
	}
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.repo.List(ctx, limit, offset)
}

func tableSetRows(ts *sheet.TableSet) int {
	return len(ts.Balances) + len(ts.Deposits) + len(ts.Withdrawals) + len(ts.Settlements) + len(ts.Rates)
}
