package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testRates() CommissionRate {
	return CommissionRate{
		Shop:           "ACME SHOP",
		DPCommPercent:  dec("2"),
		WDCommPercent:  dec("1"),
		AddCommPercent: dec("0.5"),
	}
}

func testDeposits() []TransactionRecord {
	return []TransactionRecord{
		{Shop: "Acme  Shop", Date: "2024-01-09", Amount: dec("1500")},
		{Shop: "ACME SHOP", Date: "2024-01-09", Amount: dec("500")},
		{Shop: "OTHER SHOP", Date: "2024-01-09", Amount: dec("9999")},
	}
}

func testWithdrawals() []TransactionRecord {
	return []TransactionRecord{
		{Shop: "ACME SHOP", Date: "2024-01-09", Amount: dec("500")},
		{Shop: "ACME SHOP", Date: "", Amount: dec("777")},
	}
}

func testSettlements() []SettlementRecord {
	return []SettlementRecord{
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeSettlement, Amount: dec("1200")},
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeIn, Amount: dec("50")},
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeOut, Amount: dec("30")},
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeSpecialPayment, Amount: dec("20")},
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeAdjustment, Amount: dec("100")},
		{Shop: "ACME SHOP", Date: "2024-01-10", Mode: ModeSecurityDeposit, Amount: dec("999")},
	}
}

func TestBuildLedger_RunningBalance(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), testSettlements(),
		dec("1000"), dec("500"),
		testRates(),
	)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	opening := rows[0]
	if opening.Date != OpeningRowMarker {
		t.Errorf("expected opening row first, got %q", opening.Date)
	}
	if !opening.Balance.Equal(dec("1000")) {
		t.Errorf("opening balance = %s, want 1000", opening.Balance)
	}
	if !opening.SecurityDeposit.Equal(dec("500")) {
		t.Errorf("opening security deposit = %s, want 500", opening.SecurityDeposit)
	}
	if !opening.Deposit.IsZero() || !opening.Withdrawal.IsZero() {
		t.Errorf("opening row must carry zero flows")
	}

	// 2024-01-09: deposits 2000, withdrawals 500, comms 40/5/10
	day1 := rows[1]
	if day1.Date != "2024-01-09" {
		t.Fatalf("rows[1].Date = %q, want 2024-01-09", day1.Date)
	}
	if !day1.Deposit.Equal(dec("2000")) {
		t.Errorf("day1 deposit = %s, want 2000", day1.Deposit)
	}
	if !day1.Withdrawal.Equal(dec("500")) {
		t.Errorf("day1 withdrawal = %s, want 500", day1.Withdrawal)
	}
	if !day1.DPComm.Equal(dec("40")) || !day1.WDComm.Equal(dec("5")) || !day1.AddComm.Equal(dec("10")) {
		t.Errorf("day1 comms = %s/%s/%s, want 40/5/10", day1.DPComm, day1.WDComm, day1.AddComm)
	}
	if !day1.Balance.Equal(dec("2445")) {
		t.Errorf("day1 balance = %s, want 2445", day1.Balance)
	}

	// 2024-01-10: settlement modes only
	day2 := rows[2]
	if day2.Date != "2024-01-10" {
		t.Fatalf("rows[2].Date = %q, want 2024-01-10", day2.Date)
	}
	if !day2.Settlement.Equal(dec("1200")) {
		t.Errorf("day2 settlement = %s, want 1200", day2.Settlement)
	}
	if !day2.SecurityDeposit.Equal(dec("999")) {
		t.Errorf("day2 security deposit = %s, want 999", day2.SecurityDeposit)
	}
	if !day2.Balance.Equal(dec("1345")) {
		t.Errorf("day2 balance = %s, want 1345", day2.Balance)
	}
}

func TestBuildLedger_ZeroBringForward(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), nil,
		decimal.Zero, dec("500"),
		testRates(),
	)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Date == OpeningRowMarker {
		t.Error("zero bring-forward must not emit an opening row")
	}
	if !rows[0].Balance.Equal(dec("1445")) {
		t.Errorf("balance = %s, want 1445", rows[0].Balance)
	}
}

func TestBuildLedger_MissingRates(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), nil,
		decimal.Zero, decimal.Zero,
		CommissionRate{Shop: "ACME SHOP"},
	)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if !r.DPComm.IsZero() || !r.WDComm.IsZero() || !r.AddComm.IsZero() {
		t.Errorf("missing rates must yield zero commissions, got %s/%s/%s", r.DPComm, r.WDComm, r.AddComm)
	}
	if !r.Balance.Equal(dec("1500")) {
		t.Errorf("balance = %s, want 1500", r.Balance)
	}
}

func TestBuildLedger_SecurityDepositDoesNotMoveBalance(t *testing.T) {
	settlements := []SettlementRecord{
		{Shop: "ACME SHOP", Date: "2024-03-01", Mode: ModeSecurityDeposit, Amount: dec("5000")},
	}

	rows := BuildLedger("ACME SHOP", nil, nil, settlements, dec("100"), decimal.Zero, CommissionRate{})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[1].SecurityDeposit.Equal(dec("5000")) {
		t.Errorf("security deposit column = %s, want 5000", rows[1].SecurityDeposit)
	}
	if !rows[1].Balance.Equal(dec("100")) {
		t.Errorf("balance = %s, want unchanged 100", rows[1].Balance)
	}
}

func TestBuildLedger_DateOrdering(t *testing.T) {
	deposits := []TransactionRecord{
		{Shop: "S", Date: "1/10/2024", Amount: dec("1")},
		{Shop: "S", Date: "1/9/2024", Amount: dec("1")},
		{Shop: "S", Date: "2024-01-02", Amount: dec("1")},
		{Shop: "S", Date: "not a date", Amount: dec("1")},
	}

	rows := BuildLedger("S", deposits, nil, nil, decimal.Zero, decimal.Zero, CommissionRate{})

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Date
	}
	want := []string{"2024-01-02", "1/9/2024", "1/10/2024", "not a date"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rows[%d].Date = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildLedger_RunningBalanceChains(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), testSettlements(),
		dec("1000"), dec("500"),
		testRates(),
	)

	balance := decimal.Zero
	for i, r := range rows {
		if r.Date == OpeningRowMarker {
			balance = r.Balance
			continue
		}
		balance = balance.Add(r.NetFlow())
		if !r.Balance.Equal(balance) {
			t.Errorf("rows[%d] balance = %s, want chained %s", i, r.Balance, balance)
		}
	}
}

func TestTotalRow(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), testSettlements(),
		dec("1000"), dec("500"),
		testRates(),
	)

	total := TotalRow(rows)

	if total.Date != TotalRowMarker {
		t.Errorf("total.Date = %q, want %q", total.Date, TotalRowMarker)
	}
	if !total.Deposit.Equal(dec("2000")) {
		t.Errorf("total deposit = %s, want 2000", total.Deposit)
	}
	if !total.Withdrawal.Equal(dec("500")) {
		t.Errorf("total withdrawal = %s, want 500", total.Withdrawal)
	}
	// opening row's security deposit is excluded from the sum
	if !total.SecurityDeposit.Equal(dec("999")) {
		t.Errorf("total security deposit = %s, want 999", total.SecurityDeposit)
	}
	// the balance cell is the final running balance, not a sum
	if !total.Balance.Equal(dec("1345")) {
		t.Errorf("total balance = %s, want 1345", total.Balance)
	}
}

func TestTotalRow_Idempotent(t *testing.T) {
	rows := BuildLedger(
		"ACME SHOP",
		testDeposits(), testWithdrawals(), testSettlements(),
		dec("1000"), dec("500"),
		testRates(),
	)

	first := TotalRow(rows)
	second := TotalRow(append(rows, first))

	if !first.Deposit.Equal(second.Deposit) ||
		!first.Withdrawal.Equal(second.Withdrawal) ||
		!first.Balance.Equal(second.Balance) {
		t.Errorf("totaling over a totaled ledger changed the result: %+v vs %+v", first, second)
	}
}

func TestCommissionRate_Commissions(t *testing.T) {
	tests := []struct {
		name                   string
		rates                  CommissionRate
		deposit, withdrawal    string
		wantDP, wantWD, wantAdd string
	}{
		{
			name:       "add-on rated against deposits",
			rates:      CommissionRate{DPCommPercent: dec("2"), WDCommPercent: dec("1"), AddCommPercent: dec("0.5")},
			deposit:    "1000",
			withdrawal: "400",
			wantDP:     "20",
			wantWD:     "4",
			wantAdd:    "5",
		},
		{
			name:       "zero rates",
			rates:      CommissionRate{},
			deposit:    "1000",
			withdrawal: "400",
			wantDP:     "0",
			wantWD:     "0",
			wantAdd:    "0",
		},
		{
			name:       "fractional amounts",
			rates:      CommissionRate{DPCommPercent: dec("2.5")},
			deposit:    "100.40",
			withdrawal: "0",
			wantDP:     "2.51",
			wantWD:     "0",
			wantAdd:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp, wd, add := tt.rates.Commissions(dec(tt.deposit), dec(tt.withdrawal))
			if !dp.Equal(dec(tt.wantDP)) {
				t.Errorf("dp = %s, want %s", dp, tt.wantDP)
			}
			if !wd.Equal(dec(tt.wantWD)) {
				t.Errorf("wd = %s, want %s", wd, tt.wantWD)
			}
			if !add.Equal(dec(tt.wantAdd)) {
				t.Errorf("add = %s, want %s", add, tt.wantAdd)
			}
		})
	}
}
