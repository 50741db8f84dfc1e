package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/sheet"
)

// LedgerUseCase reconciles a single shop's transaction history into a
// running-balance ledger.
type LedgerUseCase struct {
	source    TableSource
	snapshots SnapshotRepository
}

// NewLedgerUseCase creates a new LedgerUseCase. The snapshot repository may
// be nil, which disables as-of queries.
func NewLedgerUseCase(source TableSource, snapshots SnapshotRepository) *LedgerUseCase {
	return &LedgerUseCase{source: source, snapshots: snapshots}
}

// ShopLedger is one shop's reconciled ledger plus the identity header the
// exports print above the table.
type ShopLedger struct {
	ShopName        string
	TeamLeader      string
	SecurityDeposit decimal.Decimal
	BringForward    decimal.Decimal
	Rows            []domain.LedgerRow
	Total           domain.LedgerRow
}

// GetShopLedger builds the ledger for one shop. A shop missing from the
// master or rate tables still reconciles, with zero-valued defaults; it is
// not an error.
func (uc *LedgerUseCase) GetShopLedger(ctx context.Context, shopName, asOf string) (*ShopLedger, error) {
	ts, err := resolveTables(ctx, uc.source, uc.snapshots, asOf)
	if err != nil {
		return nil, err
	}
	return BuildShopLedger(sheet.MapTables(ts), shopName), nil
}

// BuildShopLedger reconciles one shop against an already-mapped dataset.
func BuildShopLedger(ds *sheet.Dataset, shopName string) *ShopLedger {
	return buildShopLedgerIndexed(ds, domain.BuildIndex(ds.Balances), domain.BuildRateIndex(ds.Rates), shopName)
}

// buildShopLedgerIndexed reuses prebuilt indexes so the bulk exporter does
// not rebuild them per shop.
func buildShopLedgerIndexed(ds *sheet.Dataset, idx domain.MasterIndex, rateIdx domain.RateIndex, shopName string) *ShopLedger {
	key := domain.NormalizeShopKey(shopName)
	master := idx.Lookup(key)
	rates := rateIdx.Lookup(key)

	rows := domain.BuildLedger(key, ds.Deposits, ds.Withdrawals, ds.Settlements,
		master.BringForward, master.SecurityDeposit, rates)

	return &ShopLedger{
		ShopName:        key,
		TeamLeader:      master.TeamLeader,
		SecurityDeposit: master.SecurityDeposit,
		BringForward:    master.BringForward,
		Rows:            rows,
		Total:           domain.TotalRow(rows),
	}
}
