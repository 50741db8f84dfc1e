package usecase

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/sheet"
)

// DashboardUseCase serves the all-shops overview: one summary row per shop,
// filterable and paginated. The summary build is a pure function of the
// fetched tables, memoized by their content hash, so a derived view always
// reflects the latest filter over the latest data without hidden globals.
type DashboardUseCase struct {
	source    TableSource
	snapshots SnapshotRepository
	memo      *gocache.Cache
}

// NewDashboardUseCase creates a new DashboardUseCase. The snapshot repository
// may be nil, which disables as-of queries.
func NewDashboardUseCase(source TableSource, snapshots SnapshotRepository) *DashboardUseCase {
	return &DashboardUseCase{
		source:    source,
		snapshots: snapshots,
		memo:      gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// DashboardQuery narrows and pages the overview.
type DashboardQuery struct {
	TeamLeader string
	Group      string
	Search     string
	Page       int
	PageSize   int
	AsOf       string
}

// DashboardPage is one page of the overview plus the totals strip computed
// over the whole filtered set.
type DashboardPage struct {
	Shops      []domain.ShopSummary
	Totals     domain.ShopSummary
	TotalShops int
	Page       int
	PageSize   int
}

// GetDashboard recomputes the overview for the latest tables and applies the
// filter and pagination.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, q DashboardQuery) (*DashboardPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}

	ts, err := resolveTables(ctx, uc.source, uc.snapshots, q.AsOf)
	if err != nil {
		return nil, err
	}

	summaries := uc.summaries(ts)
	filtered := domain.FilterSummaries(summaries, domain.SummaryFilter{
		TeamLeader: q.TeamLeader,
		Group:      q.Group,
		Search:     q.Search,
	})

	return &DashboardPage{
		Shops:      domain.PaginateSummaries(filtered, q.Page, q.PageSize),
		Totals:     domain.GrandTotals(filtered),
		TotalShops: len(filtered),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}, nil
}

// FilterOptions lists the distinct team leaders and the groups under the
// selected leader, for populating filter dropdowns.
type FilterOptions struct {
	TeamLeaders []string
	Groups      []string
}

// GetFilterOptions returns the distinct filter values present in the data.
func (uc *DashboardUseCase) GetFilterOptions(ctx context.Context, teamLeader, asOf string) (*FilterOptions, error) {
	ts, err := resolveTables(ctx, uc.source, uc.snapshots, asOf)
	if err != nil {
		return nil, err
	}
	summaries := uc.summaries(ts)
	return &FilterOptions{
		TeamLeaders: domain.Leaders(summaries),
		Groups:      domain.Groups(summaries, teamLeader),
	}, nil
}

// summaries builds (or recalls) the per-shop summary for a table set. The
// memo key is the content hash, so a refetch with identical content reuses
// the previous build and changed content invalidates it naturally.
func (uc *DashboardUseCase) summaries(ts *sheet.TableSet) []domain.ShopSummary {
	key := ts.Hash()
	if cached, ok := uc.memo.Get(key); ok {
		return cached.([]domain.ShopSummary)
	}
	summaries := domain.BuildSummary(sheet.ToBalanceRows(ts.Balances))
	uc.memo.Set(key, summaries, gocache.DefaultExpiration)
	return summaries
}
