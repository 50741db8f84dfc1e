package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/sheet"
	"github.com/iho/shopledger/internal/usecase"
)

// SnapshotRepository implements usecase.SnapshotRepository on PostgreSQL.
// One row per capture date; the five tables are stored as a single JSONB
// payload since snapshots are only ever read back whole.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Save stores a snapshot, replacing any earlier capture for the same date.
func (r *SnapshotRepository) Save(ctx context.Context, snap *usecase.Snapshot) error {
	payload, err := json.Marshal(snap.Tables)
	if err != nil {
		return fmt.Errorf("marshal snapshot tables: %w", err)
	}

	rowCount := len(snap.Tables.Balances) + len(snap.Tables.Deposits) +
		len(snap.Tables.Withdrawals) + len(snap.Tables.Settlements) + len(snap.Tables.Rates)

	_, err = r.pool.Exec(ctx, `
		INSERT INTO table_snapshots (id, snapshot_date, created_at, row_count, tables)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (snapshot_date) DO UPDATE
		SET id = EXCLUDED.id,
		    created_at = EXCLUDED.created_at,
		    row_count = EXCLUDED.row_count,
		    tables = EXCLUDED.tables
	`, snap.ID, snap.SnapshotDate, snap.CreatedAt, rowCount, payload)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// GetByDate loads the snapshot captured on the given ISO date.
func (r *SnapshotRepository) GetByDate(ctx context.Context, date string) (*usecase.Snapshot, error) {
	var (
		snap    usecase.Snapshot
		payload []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, snapshot_date::text, created_at, tables
		FROM table_snapshots
		WHERE snapshot_date = $1
	`, date).Scan(&snap.ID, &snap.SnapshotDate, &snap.CreatedAt, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var tables sheet.TableSet
	if err := json.Unmarshal(payload, &tables); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot tables: %w", err)
	}
	snap.Tables = &tables
	return &snap, nil
}

// List returns snapshot metadata, newest first.
func (r *SnapshotRepository) List(ctx context.Context, limit, offset int) ([]usecase.SnapshotMeta, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, snapshot_date::text, created_at, row_count
		FROM table_snapshots
		ORDER BY snapshot_date DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var metas []usecase.SnapshotMeta
	for rows.Next() {
		var m usecase.SnapshotMeta
		if err := rows.Scan(&m.ID, &m.SnapshotDate, &m.CreatedAt, &m.RowCount); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
