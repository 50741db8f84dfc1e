package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/sheet"
)

// summaryHeaders is the column order of the overview export.
var summaryHeaders = []string{
	"SHOP NAME", "TEAM LEADER", "GROUP NAME", "SECURITY DEPOSIT", "BRING FORWARD BALANCE",
	"TOTAL DEPOSIT", "TOTAL WITHDRAWAL", "INTERNAL TRANSFER IN", "INTERNAL TRANSFER OUT",
	"SETTLEMENT", "SPECIAL PAYMENT", "ADJUSTMENT", "DP COMM", "WD COMM", "ADD COMM",
	"RUNNING BALANCE",
}

// ledgerHeaders is the column order of the per-shop ledger export.
var ledgerHeaders = []string{
	"DATE", "DEPOSIT", "WITHDRAWAL", "IN", "OUT", "SETTLEMENT", "SPECIAL PAYMENT",
	"ADJUSTMENT", "SEC DEPOSIT", "DP COMM", "WD COMM", "ADD COMM", "BALANCE",
}

// ExportUseCase serializes summaries and ledgers to CSV, XLSX and a bulk
// per-shop ZIP. All numeric cells print with exactly two decimal places.
type ExportUseCase struct {
	source    TableSource
	snapshots SnapshotRepository
	workers   int
}

// NewExportUseCase creates a new ExportUseCase. workers bounds the number of
// shops reconciled concurrently during bulk export.
func NewExportUseCase(source TableSource, snapshots SnapshotRepository, workers int) *ExportUseCase {
	if workers < 1 {
		workers = 4
	}
	return &ExportUseCase{source: source, snapshots: snapshots, workers: workers}
}

// SummaryCSV exports the filtered overview as CSV.
func (uc *ExportUseCase) SummaryCSV(ctx context.Context, f domain.SummaryFilter, asOf string) ([]byte, error) {
	summaries, err := uc.filteredSummaries(ctx, f, asOf)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(summaryHeaders); err != nil {
		return nil, err
	}
	for _, s := range summaries {
		if err := w.Write(summaryRecord(s)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SummaryXLSX exports the filtered overview as an XLSX workbook with a
// trailing totals row.
func (uc *ExportUseCase) SummaryXLSX(ctx context.Context, f domain.SummaryFilter, asOf string) ([]byte, error) {
	summaries, err := uc.filteredSummaries(ctx, f, asOf)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	const sheetName = "SHOPS SUMMARY"
	idx, err := wb.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	wb.SetActiveSheet(idx)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return wb.SetSheetRow(sheetName, cell, &cells)
	}

	if err := writeRow(1, summaryHeaders); err != nil {
		return nil, err
	}
	row := 2
	for _, s := range summaries {
		if err := writeRow(row, summaryRecord(s)); err != nil {
			return nil, err
		}
		row++
	}
	if err := writeRow(row, summaryRecord(domain.GrandTotals(summaries))); err != nil {
		return nil, err
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ShopLedgerCSV exports one shop's ledger as CSV, prefixed with the shop
// identity header lines and ending with the TOTAL row.
func (uc *ExportUseCase) ShopLedgerCSV(ctx context.Context, shopName, asOf string) ([]byte, error) {
	ts, err := resolveTables(ctx, uc.source, uc.snapshots, asOf)
	if err != nil {
		return nil, err
	}
	ledger := BuildShopLedger(sheet.MapTables(ts), shopName)
	return marshalLedgerCSV(ledger)
}

// BulkLedgerZIP reconciles every shop on the balance sheet (optionally
// narrowed to one team leader) and bundles one CSV per shop into a ZIP
// archive. Shops are independent, so they are built on a bounded worker pool
// over the shared immutable dataset.
func (uc *ExportUseCase) BulkLedgerZIP(ctx context.Context, teamLeader, asOf string) ([]byte, error) {
	ts, err := resolveTables(ctx, uc.source, uc.snapshots, asOf)
	if err != nil {
		return nil, err
	}

	ds := sheet.MapTables(ts)
	idx := domain.BuildIndex(ds.Balances)
	rateIdx := domain.BuildRateIndex(ds.Rates)

	shops := shopKeysInOrder(ds.Balances)
	if teamLeader != "" && !strings.EqualFold(teamLeader, domain.FilterAll) {
		want := strings.ToUpper(strings.TrimSpace(teamLeader))
		kept := shops[:0]
		for _, key := range shops {
			if strings.ToUpper(idx.Lookup(key).TeamLeader) == want {
				kept = append(kept, key)
			}
		}
		shops = kept
	}
	if len(shops) == 0 {
		return nil, domain.ErrNoData
	}

	type result struct {
		data []byte
		err  error
	}
	results := make([]result, len(shops))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ledger := buildShopLedgerIndexed(ds, idx, rateIdx, shops[i])
				data, err := marshalLedgerCSV(ledger)
				results[i] = result{data: data, err: err}
			}
		}()
	}
	for i := range shops {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, key := range shops {
		if results[i].err != nil {
			return nil, results[i].err
		}
		f, err := zw.Create(SafeFileName(key) + ".csv")
		if err != nil {
			return nil, err
		}
		if _, err := f.Write(results[i].data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (uc *ExportUseCase) filteredSummaries(ctx context.Context, f domain.SummaryFilter, asOf string) ([]domain.ShopSummary, error) {
	ts, err := resolveTables(ctx, uc.source, uc.snapshots, asOf)
	if err != nil {
		return nil, err
	}
	summaries := domain.FilterSummaries(domain.BuildSummary(sheet.ToBalanceRows(ts.Balances)), f)
	if len(summaries) == 0 {
		return nil, domain.ErrNoData
	}
	return summaries, nil
}

func summaryRecord(s domain.ShopSummary) []string {
	name := s.ShopName
	if s.WalletNumber != "" {
		name = fmt.Sprintf("%s (%s)", s.ShopName, s.WalletNumber)
	}
	return []string{
		name,
		s.TeamLeader,
		s.GroupName,
		s.SecurityDeposit.StringFixed(2),
		s.BringForward.StringFixed(2),
		s.TotalDeposit.StringFixed(2),
		s.TotalWithdrawal.StringFixed(2),
		s.TransferIn.StringFixed(2),
		s.TransferOut.StringFixed(2),
		s.Settlement.StringFixed(2),
		s.SpecialPayment.StringFixed(2),
		s.Adjustment.StringFixed(2),
		s.DPComm.StringFixed(2),
		s.WDComm.StringFixed(2),
		s.AddComm.StringFixed(2),
		s.RunningBalance.StringFixed(2),
	}
}

func ledgerRecord(r domain.LedgerRow) []string {
	return []string{
		r.Date,
		r.Deposit.StringFixed(2),
		r.Withdrawal.StringFixed(2),
		r.TransferIn.StringFixed(2),
		r.TransferOut.StringFixed(2),
		r.Settlement.StringFixed(2),
		r.SpecialPayment.StringFixed(2),
		r.Adjustment.StringFixed(2),
		r.SecurityDeposit.StringFixed(2),
		r.DPComm.StringFixed(2),
		r.WDComm.StringFixed(2),
		r.AddComm.StringFixed(2),
		r.Balance.StringFixed(2),
	}
}

func marshalLedgerCSV(ledger *ShopLedger) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := [][]string{
		{ledger.ShopName},
		{"Shop Name: " + ledger.ShopName},
		{"Security Deposit: " + ledger.SecurityDeposit.StringFixed(2)},
		{"Bring Forward Balance: " + ledger.BringForward.StringFixed(2)},
		{"Team Leader: " + ledger.TeamLeader},
		{""},
		ledgerHeaders,
	}
	for _, rec := range header {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	for _, row := range ledger.Rows {
		if err := w.Write(ledgerRecord(row)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(ledgerRecord(ledger.Total)); err != nil {
		return nil, err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shopKeysInOrder returns the distinct normalized shop keys in balance-sheet
// order.
func shopKeysInOrder(rows []domain.BalanceRow) []string {
	seen := make(map[string]struct{}, len(rows))
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		key := domain.NormalizeShopKey(r.Shop)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// SafeFileName replaces characters that are unsafe in file and archive member names.
func SafeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
