package mocks

import (
	"context"
	"sync"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/sheet"
	"github.com/iho/shopledger/internal/usecase"
)

// StaticTableSource is a TableSource that always serves the same table set
// and counts its calls. Use the generated MockTableSource when expectations
// on call arguments are needed.
type StaticTableSource struct {
	mu     sync.Mutex
	calls  int
	Tables *sheet.TableSet

	FetchAllFunc func(ctx context.Context) (*sheet.TableSet, error)
}

func NewStaticTableSource(tables *sheet.TableSet) *StaticTableSource {
	return &StaticTableSource{Tables: tables}
}

func (m *StaticTableSource) FetchAll(ctx context.Context) (*sheet.TableSet, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.FetchAllFunc != nil {
		return m.FetchAllFunc(ctx)
	}
	if m.Tables == nil {
		return nil, domain.ErrSourceUnavailable
	}
	return m.Tables, nil
}

// Calls reports how many times FetchAll ran.
func (m *StaticTableSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSnapshotRepository is an in-memory mock of SnapshotRepository.
type MockSnapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*usecase.Snapshot

	SaveFunc      func(ctx context.Context, snap *usecase.Snapshot) error
	GetByDateFunc func(ctx context.Context, date string) (*usecase.Snapshot, error)
	ListFunc      func(ctx context.Context, limit, offset int) ([]usecase.SnapshotMeta, error)
}

func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{snapshots: make(map[string]*usecase.Snapshot)}
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snap *usecase.Snapshot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, snap)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[snap.SnapshotDate] = snap
	return nil
}

func (m *MockSnapshotRepository) GetByDate(ctx context.Context, date string) (*usecase.Snapshot, error) {
	if m.GetByDateFunc != nil {
		return m.GetByDateFunc(ctx, date)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if snap, ok := m.snapshots[date]; ok {
		return snap, nil
	}
	return nil, domain.ErrSnapshotNotFound
}

func (m *MockSnapshotRepository) List(ctx context.Context, limit, offset int) ([]usecase.SnapshotMeta, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	metas := make([]usecase.SnapshotMeta, 0, len(m.snapshots))
	for _, snap := range m.snapshots {
		metas = append(metas, usecase.SnapshotMeta{
			ID:           snap.ID,
			SnapshotDate: snap.SnapshotDate,
			CreatedAt:    snap.CreatedAt,
		})
	}
	return metas, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "mock-id"
}
