package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/iho/shopledger/internal/domain"
	"github.com/iho/shopledger/internal/usecase"
	"github.com/iho/shopledger/internal/usecase/mocks"
)

func parseCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	return records
}

func TestExportUseCase_SummaryCSV(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	data, err := uc.SummaryCSV(context.Background(), domain.SummaryFilter{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := parseCSV(t, data)
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "SHOP NAME" || records[0][len(records[0])-1] != "RUNNING BALANCE" {
		t.Errorf("unexpected header: %v", records[0])
	}
	// wallet number rides along in the shop name cell
	if records[1][0] != "ACME SHOP (111)" {
		t.Errorf("shop cell = %q, want ACME SHOP (111)", records[1][0])
	}
	if records[1][4] != "1000.00" {
		t.Errorf("bring forward cell = %q, want 1000.00", records[1][4])
	}
	if records[2][0] != "BETA STORE" {
		t.Errorf("shop cell = %q, want bare name without wallet", records[2][0])
	}
}

func TestExportUseCase_SummaryCSV_NoMatch(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	_, err := uc.SummaryCSV(context.Background(), domain.SummaryFilter{TeamLeader: "NOBODY"}, "")
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestExportUseCase_SummaryXLSX(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	data, err := uc.SummaryXLSX(context.Background(), domain.SummaryFilter{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("SHOPS SUMMARY")
	if err != nil {
		t.Fatalf("missing sheet: %v", err)
	}
	// header, two shops, totals
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "SHOP NAME" {
		t.Errorf("header cell = %q", rows[0][0])
	}
	if rows[3][0] != domain.TotalRowMarker {
		t.Errorf("last row = %q, want totals", rows[3][0])
	}
}

func TestExportUseCase_ShopLedgerCSV(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	data, err := uc.ShopLedgerCSV(context.Background(), "ACME SHOP", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records := parseCSV(t, data)
	if records[1][0] != "Shop Name: ACME SHOP" {
		t.Errorf("identity line = %q", records[1][0])
	}
	if records[3][0] != "Bring Forward Balance: 1000.00" {
		t.Errorf("identity line = %q", records[3][0])
	}

	last := records[len(records)-1]
	if last[0] != domain.TotalRowMarker {
		t.Errorf("last record = %q, want TOTAL", last[0])
	}
	if last[len(last)-1] != "1245.00" {
		t.Errorf("total balance cell = %q, want 1245.00", last[len(last)-1])
	}
}

func TestExportUseCase_BulkLedgerZIP(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	data, err := uc.BulkLedgerZIP(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("invalid archive: %v", err)
	}

	if len(zr.File) != 2 {
		t.Fatalf("expected one CSV per shop, got %d files", len(zr.File))
	}
	if zr.File[0].Name != "ACME SHOP.csv" || zr.File[1].Name != "BETA STORE.csv" {
		t.Errorf("archive members = %q, %q", zr.File[0].Name, zr.File[1].Name)
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		t.Fatal(err)
	}
	records := parseCSV(t, buf.Bytes())
	if records[0][0] != "ACME SHOP" {
		t.Errorf("first line = %q, want shop name", records[0][0])
	}
}

func TestExportUseCase_BulkLedgerZIP_LeaderFilter(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	data, err := uc.BulkLedgerZIP(context.Background(), "bob", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "BETA STORE.csv" {
		t.Errorf("expected only BOB's shop, got %d files", len(zr.File))
	}
}

func TestExportUseCase_BulkLedgerZIP_NoShops(t *testing.T) {
	source := mocks.NewStaticTableSource(fixtureTables())
	uc := usecase.NewExportUseCase(source, nil, 2)

	_, err := uc.BulkLedgerZIP(context.Background(), "NOBODY", "")
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestSafeFileName(t *testing.T) {
	if got := usecase.SafeFileName(`A/B\C:D*E?F"G<H>I|J`); got != "A_B_C_D_E_F_G_H_I_J" {
		t.Errorf("SafeFileName = %q", got)
	}
	if got := usecase.SafeFileName("ACME SHOP"); got != "ACME SHOP" {
		t.Errorf("plain name changed: %q", got)
	}
}
