package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ShopSummary is the one-row-per-shop collapse of the raw balance sheet,
// used by the all-shops overview. Numeric fields are sums across every raw
// row for the shop; the running balance is recomputed from those sums.
type ShopSummary struct {
	ShopName     string
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
	RunningBalance  decimal.Decimal
}

// recompute applies the balance equation once over the summed totals. This is
// structurally the same formula the ledger applies per date, so summing raw
// rows and then applying it must agree with threading per-date deltas.
func (s *ShopSummary) recompute() {
	s.RunningBalance = s.BringForward.
		Add(s.TotalDeposit).
		Sub(s.TotalWithdrawal).
		Add(s.TransferIn).
		Sub(s.TransferOut).
		Sub(s.Settlement).
		Sub(s.SpecialPayment).
		Add(s.Adjustment).
		Sub(s.DPComm).
		Sub(s.WDComm).
		Sub(s.AddComm)
}

// BuildSummary groups raw balance rows by normalized shop key and folds each
// group into a single totals record. Identity fields come uppercased-trimmed
// from the row the group was created under; the wallet number takes the
// latest non-empty value. Output preserves first-appearance order.
func BuildSummary(rows []BalanceRow) []ShopSummary {
	byShop := make(map[string]*ShopSummary, len(rows))
	order := make([]string, 0, len(rows))

	for _, r := range rows {
		key := NormalizeShopKey(r.Shop)
		if key == "" {
			continue
		}
		s, ok := byShop[key]
		if !ok {
			s = &ShopSummary{
				ShopName:   key,
				TeamLeader: strings.ToUpper(strings.TrimSpace(r.TeamLeader)),
				GroupName:  strings.ToUpper(strings.TrimSpace(r.GroupName)),
			}
			byShop[key] = s
			order = append(order, key)
		}

		s.SecurityDeposit = s.SecurityDeposit.Add(r.SecurityDeposit)
		s.BringForward = s.BringForward.Add(r.BringForward)
		s.TotalDeposit = s.TotalDeposit.Add(r.TotalDeposit)
		s.TotalWithdrawal = s.TotalWithdrawal.Add(r.TotalWithdrawal)
		s.TransferIn = s.TransferIn.Add(r.TransferIn)
		s.TransferOut = s.TransferOut.Add(r.TransferOut)
		s.Settlement = s.Settlement.Add(r.Settlement)
		s.SpecialPayment = s.SpecialPayment.Add(r.SpecialPayment)
		s.Adjustment = s.Adjustment.Add(r.Adjustment)
		s.DPComm = s.DPComm.Add(r.DPComm)
		s.WDComm = s.WDComm.Add(r.WDComm)
		s.AddComm = s.AddComm.Add(r.AddComm)
		s.recompute()

		if w := strings.TrimSpace(r.WalletNumber); w != "" {
			s.WalletNumber = w
		}
	}

	out := make([]ShopSummary, 0, len(order))
	for _, key := range order {
		out = append(out, *byShop[key])
	}
	return out
}

// GrandTotals sums every numeric column of the given summaries, including the
// running balance, for the overview totals strip.
func GrandTotals(summaries []ShopSummary) ShopSummary {
	total := ShopSummary{ShopName: TotalRowMarker}
	for _, s := range summaries {
		total.SecurityDeposit = total.SecurityDeposit.Add(s.SecurityDeposit)
		total.BringForward = total.BringForward.Add(s.BringForward)
		total.TotalDeposit = total.TotalDeposit.Add(s.TotalDeposit)
		total.TotalWithdrawal = total.TotalWithdrawal.Add(s.TotalWithdrawal)
		total.TransferIn = total.TransferIn.Add(s.TransferIn)
		total.TransferOut = total.TransferOut.Add(s.TransferOut)
		total.Settlement = total.Settlement.Add(s.Settlement)
		total.SpecialPayment = total.SpecialPayment.Add(s.SpecialPayment)
		total.Adjustment = total.Adjustment.Add(s.Adjustment)
		total.DPComm = total.DPComm.Add(s.DPComm)
		total.WDComm = total.WDComm.Add(s.WDComm)
		total.AddComm = total.AddComm.Add(s.AddComm)
		total.RunningBalance = total.RunningBalance.Add(s.RunningBalance)
	}
	return total
}
