package handler

import (
	"context"
	"net/http"

	"github.com/iho/shopledger/internal/adapter/http/dto"
	"github.com/iho/shopledger/internal/usecase"
)

// DashboardService defines the behavior needed by DashboardHandler.
type DashboardService interface {
	GetDashboard(ctx context.Context, q usecase.DashboardQuery) (*usecase.DashboardPage, error)
	GetFilterOptions(ctx context.Context, teamLeader, asOf string) (*usecase.FilterOptions, error)
}

// DashboardHandler handles shop overview HTTP requests.
type DashboardHandler struct {
	dashboardUC DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardUC DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC}
}

// List returns one page of the filtered shop overview.
func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	q := usecase.DashboardQuery{
		TeamLeader: r.URL.Query().Get("team_leader"),
		Group:      r.URL.Query().Get("group"),
		Search:     r.URL.Query().Get("search"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 0),
		AsOf:       r.URL.Query().Get("as_of"),
	}

	page, err := h.dashboardUC.GetDashboard(r.Context(), q)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build dashboard", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DashboardFromUseCase(page))
}

// FilterOptions returns the distinct team leaders and groups.
func (h *DashboardHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.dashboardUC.GetFilterOptions(r.Context(), r.URL.Query().Get("team_leader"), r.URL.Query().Get("as_of"))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list filter options", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.FilterOptionsResponse{
		TeamLeaders: opts.TeamLeaders,
		Groups:      opts.Groups,
	})
}
