package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/usecase"
)

// ShopSummaryResponse represents one overview row in API responses.
type ShopSummaryResponse struct {
	ShopName        string          `json:"shop_name"`
	TeamLeader      string          `json:"team_leader"`
	GroupName       string          `json:"group_name"`
	WalletNumber    string          `json:"wallet_number,omitempty"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	BringForward    decimal.Decimal `json:"bring_forward_balance"`
	TotalDeposit    decimal.Decimal `json:"total_deposit"`
	TotalWithdrawal decimal.Decimal `json:"total_withdrawal"`
	TransferIn      decimal.Decimal `json:"internal_transfer_in"`
	TransferOut     decimal.Decimal `json:"internal_transfer_out"`
	Settlement      decimal.Decimal `json:"settlement"`
	SpecialPayment  decimal.Decimal `json:"special_payment"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	DPComm          decimal.Decimal `json:"dp_comm"`
	WDComm          decimal.Decimal `json:"wd_comm"`
	AddComm         decimal.Decimal `json:"add_comm"`
	RunningBalance  decimal.Decimal `json:"running_balance"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(s domain.ShopSummary) ShopSummaryResponse {
	return ShopSummaryResponse{
		ShopName:        s.ShopName,
		TeamLeader:      s.TeamLeader,
		GroupName:       s.GroupName,
		WalletNumber:    s.WalletNumber,
		SecurityDeposit: s.SecurityDeposit,
		BringForward:    s.BringForward,
		TotalDeposit:    s.TotalDeposit,
		TotalWithdrawal: s.TotalWithdrawal,
		TransferIn:      s.TransferIn,
		TransferOut:     s.TransferOut,
		Settlement:      s.Settlement,
		SpecialPayment:  s.SpecialPayment,
		Adjustment:      s.Adjustment,
		DPComm:          s.DPComm,
		WDComm:          s.WDComm,
		AddComm:         s.AddComm,
		RunningBalance:  s.RunningBalance,
	}
}

// SummariesFromDomain converts domain summaries to responses.
func SummariesFromDomain(summaries []domain.ShopSummary) []ShopSummaryResponse {
	result := make([]ShopSummaryResponse, len(summaries))
	for i, s := range summaries {
		result[i] = SummaryFromDomain(s)
	}
	return result
}

// DashboardResponse is one page of the overview.
type DashboardResponse struct {
	Shops      []ShopSummaryResponse `json:"shops"`
	Totals     ShopSummaryResponse   `json:"totals"`
	TotalShops int                   `json:"total_shops"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
}

// DashboardFromUseCase converts a dashboard page to a response.
func DashboardFromUseCase(p *usecase.DashboardPage) DashboardResponse {
	return DashboardResponse{
		Shops:      SummariesFromDomain(p.Shops),
		Totals:     SummaryFromDomain(p.Totals),
		TotalShops: p.TotalShops,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

// FilterOptionsResponse lists distinct filter values.
type FilterOptionsResponse struct {
	TeamLeaders []string `json:"team_leaders"`
	Groups      []string `json:"groups"`
}

// LedgerRowResponse represents one reconciled ledger line.
type LedgerRowResponse struct {
	Date            string          `json:"date"`
	Deposit         decimal.Decimal `json:"deposit"`
	Withdrawal      decimal.Decimal `json:"withdrawal"`
	TransferIn      decimal.Decimal `json:"transfer_in"`
	TransferOut     decimal.Decimal `json:"transfer_out"`
	Settlement      decimal.Decimal `json:"settlement"`
	SpecialPayment  decimal.Decimal `json:"special_payment"`
	Adjustment      decimal.Decimal `json:"adjustment"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	DPComm          decimal.Decimal `json:"dp_comm"`
	WDComm          decimal.Decimal `json:"wd_comm"`
	AddComm         decimal.Decimal `json:"add_comm"`
	Balance         decimal.Decimal `json:"balance"`
}

// LedgerRowFromDomain converts a ledger row to a response.
func LedgerRowFromDomain(r domain.LedgerRow) LedgerRowResponse {
	return LedgerRowResponse{
		Date:            r.Date,
		Deposit:         r.Deposit,
		Withdrawal:      r.Withdrawal,
		TransferIn:      r.TransferIn,
		TransferOut:     r.TransferOut,
		Settlement:      r.Settlement,
		SpecialPayment:  r.SpecialPayment,
		Adjustment:      r.Adjustment,
		SecurityDeposit: r.SecurityDeposit,
		DPComm:          r.DPComm,
		WDComm:          r.WDComm,
		AddComm:         r.AddComm,
		Balance:         r.Balance,
	}
}

// ShopLedgerResponse is one shop's reconciled ledger.
type ShopLedgerResponse struct {
	ShopName        string              `json:"shop_name"`
	TeamLeader      string              `json:"team_leader"`
	SecurityDeposit decimal.Decimal     `json:"security_deposit"`
	BringForward    decimal.Decimal     `json:"bring_forward_balance"`
	Rows            []LedgerRowResponse `json:"rows"`
	Total           LedgerRowResponse   `json:"total"`
}

// LedgerFromUseCase converts a shop ledger to a response.
func LedgerFromUseCase(l *usecase.ShopLedger) ShopLedgerResponse {
	rows := make([]LedgerRowResponse, len(l.Rows))
	for i, r := range l.Rows {
		rows[i] = LedgerRowFromDomain(r)
	}
	return ShopLedgerResponse{
		ShopName:        l.ShopName,
		TeamLeader:      l.TeamLeader,
		SecurityDeposit: l.SecurityDeposit,
		BringForward:    l.BringForward,
		Rows:            rows,
		Total:           LedgerRowFromDomain(l.Total),
	}
}

// SnapshotResponse represents a stored snapshot in API responses.
type SnapshotResponse struct {
	ID           string    `json:"id"`
	SnapshotDate string    `json:"snapshot_date"`
	CreatedAt    time.Time `json:"created_at"`
	RowCount     int       `json:"row_count"`
}

// SnapshotFromUseCase converts snapshot metadata to a response.
func SnapshotFromUseCase(m usecase.SnapshotMeta) SnapshotResponse {
	return SnapshotResponse{
		ID:           m.ID,
		SnapshotDate: m.SnapshotDate,
		CreatedAt:    m.CreatedAt,
		RowCount:     m.RowCount,
	}
}

// SnapshotsFromUseCase converts snapshot metadata lists to responses.
func SnapshotsFromUseCase(metas []usecase.SnapshotMeta) []SnapshotResponse {
	result := make([]SnapshotResponse, len(metas))
	for i, m := range metas {
		result[i] = SnapshotFromUseCase(m)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
