package handler

import (
	"context"
	"net/http"

	"github.com/iho/shopledger/internal/adapter/http/dto"
	"github.com/iho/shopledger/internal/usecase"
)

// SnapshotService defines the behavior needed by SnapshotHandler.
type SnapshotService interface {
	Capture(ctx context.Context) (*usecase.SnapshotMeta, error)
	List(ctx context.Context, limit, offset int) ([]usecase.SnapshotMeta, error)
}

// SnapshotHandler handles snapshot HTTP requests.
type SnapshotHandler struct {
	snapshotUC SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotUC SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotUC: snapshotUC}
}

// Create captures the current source tables as a dated snapshot.
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	meta, err := h.snapshotUC.Capture(r.Context())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to capture snapshot", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.SnapshotFromUseCase(*meta))
}

// List lists stored snapshots, newest first.
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	metas, err := h.snapshotUC.List(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list snapshots", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SnapshotsFromUseCase(metas))
}
