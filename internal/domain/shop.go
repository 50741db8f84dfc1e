package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeShopKey produces the canonical join key for a shop name:
// internal whitespace runs collapsed to a single space, trimmed, uppercased.
// Every join between the transaction tables, the shop master and the
// commission rates goes through this key.
func NormalizeShopKey(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// ShopMaster holds the identity record for a single shop, sourced from the
// balance sheet.
type ShopMaster struct {
	ShopName        string
	TeamLeader      string
	GroupName       string
	WalletNumber    string
	SecurityDeposit decimal.Decimal
	BringForward    decimal.Decimal
}

// DefaultMaster is the record used when a shop has transactions but no row in
// the balance sheet. Reconciliation proceeds with zero balances.
func DefaultMaster(shopKey string) ShopMaster {
	return ShopMaster{
		ShopName:   shopKey,
		TeamLeader: "-",
	}
}

// CommissionRate holds per-shop commission percentages on a 0-100 scale.
// The add-on commission is rated against the deposit total, not withdrawals.
type CommissionRate struct {
	Shop           string
	DPCommPercent  decimal.Decimal
	WDCommPercent  decimal.Decimal
	AddCommPercent decimal.Decimal
}

// MasterIndex maps normalized shop keys to their master record.
type MasterIndex map[string]ShopMaster

// BuildIndex builds one master entry per normalized shop key. When the balance
// sheet carries several rows for the same shop the first-seen row wins, which
// matches how the per-shop view resolves a shop; the summary builder is the
// one that sums numeric fields across duplicates.
func BuildIndex(rows []BalanceRow) MasterIndex {
	idx := make(MasterIndex, len(rows))
	for _, r := range rows {
		key := NormalizeShopKey(r.Shop)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; ok {
			continue
		}
		idx[key] = ShopMaster{
			ShopName:        key,
			TeamLeader:      strings.TrimSpace(r.TeamLeader),
			GroupName:       strings.TrimSpace(r.GroupName),
			WalletNumber:    strings.TrimSpace(r.WalletNumber),
			SecurityDeposit: r.SecurityDeposit,
			BringForward:    r.BringForward,
		}
	}
	return idx
}

// Lookup returns the master record for a shop, or the zero-balance default
// when the shop is absent. Absence is not an error condition.
func (idx MasterIndex) Lookup(shopKey string) ShopMaster {
	if m, ok := idx[shopKey]; ok {
		return m
	}
	return DefaultMaster(shopKey)
}

// RateIndex maps normalized shop keys to commission rates.
type RateIndex map[string]CommissionRate

// BuildRateIndex builds one rate entry per normalized shop key.
func BuildRateIndex(rates []CommissionRate) RateIndex {
	idx := make(RateIndex, len(rates))
	for _, r := range rates {
		key := NormalizeShopKey(r.Shop)
		if key == "" {
			continue
		}
		if _, ok := idx[key]; ok {
			continue
		}
		r.Shop = key
		idx[key] = r
	}
	return idx
}

// Lookup returns the rates for a shop. A shop absent from the rate table pays
// no commission: every field defaults to zero.
func (idx RateIndex) Lookup(shopKey string) CommissionRate {
	if r, ok := idx[shopKey]; ok {
		return r
	}
	return CommissionRate{Shop: shopKey}
}
