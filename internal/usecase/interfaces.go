package usecase

import (
	"context"

	"github.com/iho/shopledger/internal/sheet"
)

// TableSource supplies one consistent generation of the five source tables.
type TableSource interface {
	FetchAll(ctx context.Context) (*sheet.TableSet, error)
}

// SnapshotRepository persists point-in-time copies of the source tables.
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	GetByDate(ctx context.Context, date string) (*Snapshot, error)
	List(ctx context.Context, limit, offset int) ([]SnapshotMeta, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
