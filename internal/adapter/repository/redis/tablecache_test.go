package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/shopledger/internal/sheet"
	"github.com/iho/shopledger/internal/usecase/mocks"
)

func cacheTestTables() *sheet.TableSet {
	return &sheet.TableSet{
		Balances: []sheet.Row{
			{"SHOP NAME": "ACME SHOP", "TEAM LEADER": "ALICE"},
		},
		Deposits:  []sheet.Row{{"SHOP NAME": "ACME SHOP", "AMOUNT": "100"}},
		FetchedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCachedTableSourceServesFromCache(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewStaticTableSource(cacheTestTables())
	source := NewCachedTableSource(inner, client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	first, err := source.FetchAll(ctx)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := source.FetchAll(ctx)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if got := inner.Calls(); got != 1 {
		t.Fatalf("expected 1 inner fetch, got %d", got)
	}
	if first.Hash() != second.Hash() {
		t.Fatalf("cached tables diverged from fetched tables")
	}
	if len(second.Balances) != 1 || second.Balances[0]["SHOP NAME"] != "ACME SHOP" {
		t.Fatalf("unexpected cached balances: %+v", second.Balances)
	}
}

func TestCachedTableSourceExpiry(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewStaticTableSource(cacheTestTables())
	source := NewCachedTableSource(inner, client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := source.FetchAll(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := source.FetchAll(ctx); err != nil {
		t.Fatalf("fetch after expiry failed: %v", err)
	}
	if got := inner.Calls(); got != 2 {
		t.Fatalf("expected refetch after expiry, got %d inner fetches", got)
	}
}

func TestCachedTableSourceUndecodablePayload(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	if err := mr.Set(latestTablesKey, "not json"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	inner := mocks.NewStaticTableSource(cacheTestTables())
	source := NewCachedTableSource(inner, client, time.Minute, zerolog.Nop())

	ts, err := source.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if got := inner.Calls(); got != 1 {
		t.Fatalf("expected fall-through to inner source, got %d fetches", got)
	}
	if len(ts.Deposits) != 1 {
		t.Fatalf("unexpected deposits: %+v", ts.Deposits)
	}
}

func TestCachedTableSourceInvalidate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	inner := mocks.NewStaticTableSource(cacheTestTables())
	source := NewCachedTableSource(inner, client, time.Minute, zerolog.Nop())
	ctx := context.Background()

	if _, err := source.FetchAll(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if err := source.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if mr.Exists(latestTablesKey) {
		t.Fatalf("expected cache key to be gone after invalidate")
	}

	if _, err := source.FetchAll(ctx); err != nil {
		t.Fatalf("fetch after invalidate failed: %v", err)
	}
	if got := inner.Calls(); got != 2 {
		t.Fatalf("expected refetch after invalidate, got %d inner fetches", got)
	}
}
