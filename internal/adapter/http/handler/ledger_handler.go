package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/shopledger/internal/adapter/http/dto"
	"github.com/iho/shopledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetShopLedger(ctx context.Context, shopName, asOf string) (*usecase.ShopLedger, error)
}

// LedgerHandler handles per-shop ledger HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Get returns the reconciled daily ledger for one shop.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	shopName := chi.URLParam(r, "name")
	if shopName == "" {
		writeError(w, http.StatusBadRequest, "missing shop name", "")
		return
	}

	ledger, err := h.ledgerUC.GetShopLedger(r.Context(), shopName, r.URL.Query().Get("as_of"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build ledger", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromUseCase(ledger))
}
