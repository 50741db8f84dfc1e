package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionRecord is one deposit or withdrawal event for a shop on a date.
// Dates are ISO YYYY-MM-DD strings after source normalization.
type TransactionRecord struct {
	Shop   string
	Date   string
	Amount decimal.Decimal
}

// SettlementMode tags a settlement-table row with the ledger column its
// amount contributes to. The settlement sheet is a single heterogeneous table
// partitioned by this discriminator, not six separate tables.
type SettlementMode string

const (
	ModeIn              SettlementMode = "IN"
	ModeOut             SettlementMode = "OUT"
	ModeSettlement      SettlementMode = "SETTLEMENT"
	ModeSpecialPayment  SettlementMode = "SPECIAL PAYMENT"
	ModeAdjustment      SettlementMode = "ADJUSTMENT"
	ModeSecurityDeposit SettlementMode = "SECURITY DEPOSIT"
)

// ParseSettlementMode matches a normalized mode string against the known
// modes. Matching is exact after normalization; unknown tags are reported so
// the caller can drop the row rather than silently misfile the amount.
func ParseSettlementMode(s string) (SettlementMode, bool) {
	switch SettlementMode(NormalizeShopKey(s)) {
	case ModeIn:
		return ModeIn, true
	case ModeOut:
		return ModeOut, true
	case ModeSettlement:
		return ModeSettlement, true
	case ModeSpecialPayment:
		return ModeSpecialPayment, true
	case ModeAdjustment:
		return ModeAdjustment, true
	case ModeSecurityDeposit:
		return ModeSecurityDeposit, true
	}
	return "", false
}

// SettlementRecord is one settlement-mode event for a shop on a date.
type SettlementRecord struct {
	Shop   string
	Date   string
	Mode   SettlementMode
	Amount decimal.Decimal
}

// BalanceRow is one raw row of the shop balance sheet. A shop may appear on
// several rows; the summary builder folds them into one record per shop.
type BalanceRow struct {
	Shop         string
	TeamLeader   string
	GroupName    string
	WalletNumber string

	SecurityDeposit decimal.Decimal
	BringForward    decimal.Decimal
	TotalDeposit    decimal.Decimal
	TotalWithdrawal decimal.Decimal
	TransferIn      decimal.Decimal
	TransferOut     decimal.Decimal
	Settlement      decimal.Decimal
	SpecialPayment  decimal.Decimal
	Adjustment      decimal.Decimal
	DPComm          decimal.Decimal
	WDComm          decimal.Decimal
	AddComm         decimal.Decimal
}
