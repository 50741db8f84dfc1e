package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Row markers for the synthetic opening and trailing total rows.
const (
	OpeningRowMarker = "B/F Balance"
	TotalRowMarker   = "TOTAL"
)

// LedgerRow is one reconciled line of a shop's running-balance ledger: the
// per-date flow totals, the derived commissions and the balance after that
// date's net flow was applied.
type LedgerRow struct {
	Date            string
	Deposit         decimal.Decimal
	Withdrawal      decimal.Decimal
	TransferIn      decimal.Decimal
	TransferOut     decimal.Decimal
	Settlement      decimal.Decimal
	SpecialPayment  decimal.Decimal
	Adjustment      decimal.Decimal
	SecurityDeposit decimal.Decimal
	DPComm          decimal.Decimal
	WDComm          decimal.Decimal
	AddComm         decimal.Decimal
	Balance         decimal.Decimal
}

// NetFlow is the amount this row moves the running balance by. The
// security-deposit column is informational and never enters the balance.
func (r LedgerRow) NetFlow() decimal.Decimal {
	return r.Deposit.
		Sub(r.Withdrawal).
		Add(r.TransferIn).
		Sub(r.TransferOut).
		Sub(r.Settlement).
		Sub(r.SpecialPayment).
		Add(r.Adjustment).
		Sub(r.DPComm).
		Sub(r.WDComm).
		Sub(r.AddComm)
}

var hundred = decimal.NewFromInt(100)

// Commissions derives the commission amounts for one date's totals. The
// add-on commission is rated against the deposit total like the deposit
// commission; withdrawals only ever carry the withdrawal commission.
func (c CommissionRate) Commissions(depositTotal, withdrawalTotal decimal.Decimal) (dp, wd, add decimal.Decimal) {
	dp = depositTotal.Mul(c.DPCommPercent).Div(hundred)
	wd = withdrawalTotal.Mul(c.WDCommPercent).Div(hundred)
	add = depositTotal.Mul(c.AddCommPercent).Div(hundred)
	return dp, wd, add
}

// BuildLedger reconciles one shop's transactions into a chronologically
// ascending running-balance ledger.
//
// The date axis is the union of dates carrying at least one deposit,
// withdrawal or settlement for the shop; blank dates are dropped. When the
// bring-forward balance is non-zero the first row is a synthetic opening row
// with all flows zero, the security-deposit column set and the balance seeded;
// a zero bring-forward suppresses that row entirely.
func BuildLedger(
	shopKey string,
	deposits, withdrawals []TransactionRecord,
	settlements []SettlementRecord,
	bringForward, securityDeposit decimal.Decimal,
	rates CommissionRate,
) []LedgerRow {
	depByDate := make(map[string]decimal.Decimal)
	wdByDate := make(map[string]decimal.Decimal)
	stlmByDate := make(map[string]map[SettlementMode]decimal.Decimal)
	dateSet := make(map[string]struct{})

	for _, t := range deposits {
		if NormalizeShopKey(t.Shop) != shopKey || t.Date == "" {
			continue
		}
		depByDate[t.Date] = depByDate[t.Date].Add(t.Amount)
		dateSet[t.Date] = struct{}{}
	}
	for _, t := range withdrawals {
		if NormalizeShopKey(t.Shop) != shopKey || t.Date == "" {
			continue
		}
		wdByDate[t.Date] = wdByDate[t.Date].Add(t.Amount)
		dateSet[t.Date] = struct{}{}
	}
	for _, s := range settlements {
		if NormalizeShopKey(s.Shop) != shopKey || s.Date == "" {
			continue
		}
		modes := stlmByDate[s.Date]
		if modes == nil {
			modes = make(map[SettlementMode]decimal.Decimal)
			stlmByDate[s.Date] = modes
		}
		modes[s.Mode] = modes[s.Mode].Add(s.Amount)
		dateSet[s.Date] = struct{}{}
	}

	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sortDates(dates)

	rows := make([]LedgerRow, 0, len(dates)+1)
	balance := bringForward

	if !bringForward.IsZero() {
		rows = append(rows, LedgerRow{
			Date:            OpeningRowMarker,
			SecurityDeposit: securityDeposit,
			Balance:         balance,
		})
	}

	for _, date := range dates {
		modes := stlmByDate[date]
		row := LedgerRow{
			Date:            date,
			Deposit:         depByDate[date],
			Withdrawal:      wdByDate[date],
			TransferIn:      modes[ModeIn],
			TransferOut:     modes[ModeOut],
			Settlement:      modes[ModeSettlement],
			SpecialPayment:  modes[ModeSpecialPayment],
			Adjustment:      modes[ModeAdjustment],
			SecurityDeposit: modes[ModeSecurityDeposit],
		}
		row.DPComm, row.WDComm, row.AddComm = rates.Commissions(row.Deposit, row.Withdrawal)

		balance = balance.Add(row.NetFlow())
		row.Balance = balance
		rows = append(rows, row)
	}

	return rows
}

// TotalRow folds a ledger into its trailing TOTAL row: a column-wise sum of
// every flow field, skipping the opening and any prior TOTAL row. The balance
// cell is the final running balance, never a sum of balances.
func TotalRow(rows []LedgerRow) LedgerRow {
	total := LedgerRow{Date: TotalRowMarker}
	for _, r := range rows {
		total.Balance = r.Balance
		if r.Date == OpeningRowMarker || r.Date == TotalRowMarker {
			continue
		}
		total.Deposit = total.Deposit.Add(r.Deposit)
		total.Withdrawal = total.Withdrawal.Add(r.Withdrawal)
		total.TransferIn = total.TransferIn.Add(r.TransferIn)
		total.TransferOut = total.TransferOut.Add(r.TransferOut)
		total.Settlement = total.Settlement.Add(r.Settlement)
		total.SpecialPayment = total.SpecialPayment.Add(r.SpecialPayment)
		total.Adjustment = total.Adjustment.Add(r.Adjustment)
		total.SecurityDeposit = total.SecurityDeposit.Add(r.SecurityDeposit)
		total.DPComm = total.DPComm.Add(r.DPComm)
		total.WDComm = total.WDComm.Add(r.WDComm)
		total.AddComm = total.AddComm.Add(r.AddComm)
	}
	return total
}

var dateLayouts = []string{"2006-01-02", "1/2/2006"}

// sortDates orders date strings by calendar value, not lexically, so that
// "1/9/2024" sorts before "1/10/2024" even if a source slipped past the ISO
// normalization. Unparseable values sort last, among themselves lexically.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		ti, oki := parseCalendarDate(dates[i])
		tj, okj := parseCalendarDate(dates[j])
		switch {
		case oki && okj:
			return ti.Before(tj)
		case oki:
			return true
		case okj:
			return false
		default:
			return dates[i] < dates[j]
		}
	})
}

func parseCalendarDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
