package sheet

import (
	"strings"

	"github.com/iho/shopledger/internal/domain"
)

// Canonical column headers, post-normalization. Matching against source
// headers is exact string match only, after CleanKey.
const (
	HeaderShop     = "SHOP"
	HeaderShopName = "SHOP NAME"
	HeaderDate     = "DATE"
	HeaderAmount   = "AMOUNT"
	HeaderMode     = "MODE"

	HeaderTeamLeader      = "TEAM LEADER"
	HeaderGroupName       = "GROUP NAME"
	HeaderWalletNumber    = "WALLET NUMBER"
	HeaderSecurityDeposit = "SECURITY DEPOSIT"
	HeaderBringForward    = "BRING FORWARD BALANCE"
	HeaderTotalDeposit    = "TOTAL DEPOSIT"
	HeaderTotalWithdrawal = "TOTAL WITHDRAWAL"
	HeaderTransferIn      = "INTERNAL TRANSFER IN"
	HeaderTransferOut     = "INTERNAL TRANSFER OUT"
	HeaderSettlement      = "SETTLEMENT"
	HeaderSpecialPayment  = "SPECIAL PAYMENT"
	HeaderAdjustment      = "ADJUSTMENT"
	HeaderDPComm          = "DP COMM"
	HeaderWDComm          = "WD COMM"
	HeaderAddComm         = "ADD COMM"
)

// Known upstream misspellings of the transfer-out header. The canonical
// spelling is tried first; the aliases are tolerated, never guessed at.
var transferOutAliases = []string{
	HeaderTransferOut,
	"INTERNAL TRANSAFER OUT",
	"INTERNAL TRANSFAER OUT",
}

var shopAliases = []string{HeaderShop, HeaderShopName}

// Dataset is the domain-typed view of one TableSet.
type Dataset struct {
	Balances    []domain.BalanceRow
	Deposits    []domain.TransactionRecord
	Withdrawals []domain.TransactionRecord
	Settlements []domain.SettlementRecord
	Rates       []domain.CommissionRate
}

// MapTables converts a fetched TableSet into domain records.
func MapTables(ts *TableSet) *Dataset {
	return &Dataset{
		Balances:    ToBalanceRows(ts.Balances),
		Deposits:    ToTransactions(ts.Deposits),
		Withdrawals: ToTransactions(ts.Withdrawals),
		Settlements: ToSettlements(ts.Settlements),
		Rates:       ToRates(ts.Rates),
	}
}

// ToBalanceRows maps balance-sheet rows, tolerating the transfer-out header
// misspellings. Rows without a shop cell are dropped.
func ToBalanceRows(rows []Row) []domain.BalanceRow {
	out := make([]domain.BalanceRow, 0, len(rows))
	for _, r := range rows {
		shop := strings.TrimSpace(r.Get(shopAliases...))
		if shop == "" {
			continue
		}
		out = append(out, domain.BalanceRow{
			Shop:            shop,
			TeamLeader:      r[HeaderTeamLeader],
			GroupName:       r[HeaderGroupName],
			WalletNumber:    r[HeaderWalletNumber],
			SecurityDeposit: ParseAmount(r[HeaderSecurityDeposit]),
			BringForward:    ParseAmount(r[HeaderBringForward]),
			TotalDeposit:    ParseAmount(r[HeaderTotalDeposit]),
			TotalWithdrawal: ParseAmount(r[HeaderTotalWithdrawal]),
			TransferIn:      ParseAmount(r[HeaderTransferIn]),
			TransferOut:     ParseAmount(r.Get(transferOutAliases...)),
			Settlement:      ParseAmount(r[HeaderSettlement]),
			SpecialPayment:  ParseAmount(r[HeaderSpecialPayment]),
			Adjustment:      ParseAmount(r[HeaderAdjustment]),
			DPComm:          ParseAmount(r[HeaderDPComm]),
			WDComm:          ParseAmount(r[HeaderWDComm]),
			AddComm:         ParseAmount(r[HeaderAddComm]),
		})
	}
	return out
}

// ToTransactions maps deposit or withdrawal rows. Dates are normalized to
// ISO so downstream ordering and joins are uniform.
func ToTransactions(rows []Row) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(rows))
	for _, r := range rows {
		shop := strings.TrimSpace(r.Get(shopAliases...))
		if shop == "" {
			continue
		}
		out = append(out, domain.TransactionRecord{
			Shop:   shop,
			Date:   ParseDate(r[HeaderDate]),
			Amount: ParseAmount(r[HeaderAmount]),
		})
	}
	return out
}

// ToSettlements maps settlement-mode rows. Rows with an unrecognized mode tag
// are dropped rather than misfiled into a ledger column.
func ToSettlements(rows []Row) []domain.SettlementRecord {
	out := make([]domain.SettlementRecord, 0, len(rows))
	for _, r := range rows {
		shop := strings.TrimSpace(r.Get(shopAliases...))
		if shop == "" {
			continue
		}
		mode, ok := domain.ParseSettlementMode(r[HeaderMode])
		if !ok {
			continue
		}
		out = append(out, domain.SettlementRecord{
			Shop:   shop,
			Date:   ParseDate(r[HeaderDate]),
			Mode:   mode,
			Amount: ParseAmount(r[HeaderAmount]),
		})
	}
	return out
}

// ToRates maps commission-rate rows; the DP/WD/ADD COMM cells are percentages
// on a 0-100 scale.
func ToRates(rows []Row) []domain.CommissionRate {
	out := make([]domain.CommissionRate, 0, len(rows))
	for _, r := range rows {
		shop := strings.TrimSpace(r.Get(shopAliases...))
		if shop == "" {
			continue
		}
		out = append(out, domain.CommissionRate{
			Shop:           shop,
			DPCommPercent:  ParseAmount(r[HeaderDPComm]),
			WDCommPercent:  ParseAmount(r[HeaderWDComm]),
			AddCommPercent: ParseAmount(r[HeaderAddComm]),
		})
	}
	return out
}
