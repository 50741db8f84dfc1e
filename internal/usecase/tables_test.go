package usecase_test

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/usecase"
	"github.com/iho/shopledger/internal/usecase/mocks"
)

func TestLedgerUseCase_FetchesLiveTables(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTableSource(ctrl)
	source.EXPECT().FetchAll(gomock.Any()).Return(fixtureTables(), nil)

	uc := usecase.NewLedgerUseCase(source, nil)

	ledger, err := uc.GetShopLedger(context.Background(), "ACME SHOP", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.ShopName != "ACME SHOP" {
		t.Errorf("shop name = %q", ledger.ShopName)
	}
}

func TestExportUseCase_PropagatesFetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockTableSource(ctrl)
	source.EXPECT().FetchAll(gomock.Any()).Return(nil, domain.ErrSourceUnavailable)

	uc := usecase.NewExportUseCase(source, nil, 2)

	if _, err := uc.BulkLedgerZIP(context.Background(), "", ""); err == nil {
		t.Fatal("expected fetch error to propagate")
	}
}
