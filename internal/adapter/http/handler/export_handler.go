package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/usecase"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeZIP  = "application/zip"
)

// ExportService defines the behavior needed by ExportHandler.
type ExportService interface {
	SummaryCSV(ctx context.Context, f domain.SummaryFilter, asOf string) ([]byte, error)
	SummaryXLSX(ctx context.Context, f domain.SummaryFilter, asOf string) ([]byte, error)
	ShopLedgerCSV(ctx context.Context, shopName, asOf string) ([]byte, error)
	BulkLedgerZIP(ctx context.Context, teamLeader, asOf string) ([]byte, error)
}

// ExportHandler handles CSV, XLSX and ZIP export HTTP requests.
type ExportHandler struct {
	exportUC ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportUC ExportService) *ExportHandler {
	return &ExportHandler{exportUC: exportUC}
}

// Summary exports the filtered shop overview as CSV or XLSX.
func (h *ExportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	f := domain.SummaryFilter{
		TeamLeader: r.URL.Query().Get("team_leader"),
		Group:      r.URL.Query().Get("group"),
		Search:     r.URL.Query().Get("search"),
	}
	asOf := r.URL.Query().Get("as_of")
	stamp := time.Now().Format("2006-01-02")

	if r.URL.Query().Get("format") == "xlsx" {
		data, err := h.exportUC.SummaryXLSX(r.Context(), f, asOf)
		if err != nil {
			status := mapDomainError(err)
			writeError(w, status, "failed to export summary", err.Error())

			return
		}

		writeAttachment(w, contentTypeXLSX, fmt.Sprintf("Shops_Summary_%s.xlsx", stamp), data)

		return
	}

	data, err := h.exportUC.SummaryCSV(r.Context(), f, asOf)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export summary", err.Error())

		return
	}

	writeAttachment(w, contentTypeCSV, fmt.Sprintf("Shops_Summary_%s.csv", stamp), data)
}

// ShopLedger exports one shop's reconciled ledger as CSV.
func (h *ExportHandler) ShopLedger(w http.ResponseWriter, r *http.Request) {
	shopName := chi.URLParam(r, "name")
	if shopName == "" {
		writeError(w, http.StatusBadRequest, "missing shop name", "")
		return
	}

	data, err := h.exportUC.ShopLedgerCSV(r.Context(), shopName, r.URL.Query().Get("as_of"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export ledger", err.Error())

		return
	}

	writeAttachment(w, contentTypeCSV, usecase.SafeFileName(shopName)+".csv", data)
}

// Bulk exports every shop's ledger as one ZIP archive.
func (h *ExportHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportUC.BulkLedgerZIP(r.Context(), r.URL.Query().Get("team_leader"), r.URL.Query().Get("as_of"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to export ledgers", err.Error())

		return
	}

	stamp := time.Now().Format("2006-01-02")
	writeAttachment(w, contentTypeZIP, fmt.Sprintf("Shop_Daily_Summaries_%s.zip", stamp), data)
}

// writeAttachment writes a downloadable file response.
func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
