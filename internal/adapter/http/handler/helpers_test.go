package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: domain.ErrSnapshotNotFound, want: http.StatusNotFound},
		{err: domain.ErrNoData, want: http.StatusNotFound},
		{err: domain.ErrTableNotFound, want: http.StatusBadGateway},
		{err: domain.ErrSourceUnavailable, want: http.StatusBadGateway},
		{err: fmt.Errorf("wrapped: %w", domain.ErrSourceUnavailable), want: http.StatusBadGateway},
		{err: usecase.ErrSnapshotsDisabled, want: http.StatusServiceUnavailable},
		{err: fmt.Errorf("some other error"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&bad=abc", nil)

	if got := parseIntQuery(req, "page", 1); got != 3 {
		t.Errorf("page = %d, want 3", got)
	}
	if got := parseIntQuery(req, "missing", 7); got != 7 {
		t.Errorf("missing = %d, want default 7", got)
	}
	if got := parseIntQuery(req, "bad", 7); got != 7 {
		t.Errorf("bad = %d, want default 7", got)
	}
}
