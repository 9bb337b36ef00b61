package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/normalize"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func groceryRows() [][]interface{} {
	return [][]interface{}{
		{"Produto", "Preco", "Unidade", "Estoque"},
		{"Arroz", 5.0, "kg", 10},
		{"Feijão", 7.0, "kg", 3},
	}
}

func tablesEqual(a, b domain.Table) bool {
	if len(a.Columns) != len(b.Columns) || len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Columns {
		if a.Columns[i] != b.Columns[i] {
			return false
		}
	}
	for i := range a.Rows {
		x, y := a.Rows[i], b.Rows[i]
		if x.Product != y.Product || x.Unit != y.Unit {
			return false
		}
		if !nullEqual(x.Price, y.Price) || !nullEqual(x.StockQty, y.StockQty) {
			return false
		}
	}
	return true
}

func nullEqual(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
}

func TestExcelStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, groceryRows())

	store := NewExcelStore(path, "", nil)
	table, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1].Product != "Feijão" {
		t.Errorf("expected Feijão, got %s", table.Rows[1].Product)
	}
	if !table.Rows[0].StockQty.Decimal.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected stock 10, got %s", table.Rows[0].StockQty.Decimal)
	}
}

func TestExcelStore_LoadNotFound(t *testing.T) {
	store := NewExcelStore(filepath.Join(t.TempDir(), "missing.xlsx"), "", nil)

	_, err := store.Load(context.Background())
	if !errors.Is(err, domain.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got: %v", err)
	}
}

func TestExcelStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	if err := os.WriteFile(path, []byte("not a workbook"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err := NewExcelStore(path, "", nil).Load(context.Background())
	if !errors.Is(err, domain.ErrResourceRead) {
		t.Errorf("expected ErrResourceRead, got: %v", err)
	}
}

func TestExcelStore_LoadEmptySheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, nil)

	_, err := NewExcelStore(path, "", nil).Load(context.Background())
	if !errors.Is(err, domain.ErrResourceRead) {
		t.Errorf("expected ErrResourceRead, got: %v", err)
	}
	if !errors.Is(err, normalize.ErrNoHeader) {
		t.Errorf("expected cause ErrNoHeader, got: %v", err)
	}
}

func TestExcelStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, groceryRows())

	ctx := context.Background()
	store := NewExcelStore(path, "", nil)

	table, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	updated, _, err := domain.ApplyDelta(table, "Feijão", decimal.NewFromInt(5))
	if err != nil {
		t.Fatalf("ApplyDelta failed: %v", err)
	}

	if err := store.Save(ctx, updated); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !tablesEqual(updated, reloaded) {
		t.Errorf("reloaded table differs:\nwant %+v\ngot  %+v", updated, reloaded)
	}
	if !reloaded.Rows[1].StockQty.Decimal.Equal(decimal.NewFromInt(8)) {
		t.Errorf("expected Feijão stock 8, got %s", reloaded.Rows[1].StockQty.Decimal)
	}
}

func TestExcelStore_SaveKeepsAbsentValuesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"Produto", "Preco", "Unidade", "Estoque"},
		{"Farinha", "", "kg", "n/d"},
	})

	ctx := context.Background()
	store := NewExcelStore(path, "", nil)
	table, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := store.Save(ctx, table); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if len(reloaded.Rows) != 1 || reloaded.Rows[0].StockQty.Valid || reloaded.Rows[0].Price.Valid {
		t.Errorf("expected absent price and stock to stay absent, got %+v", reloaded.Rows)
	}
}

func TestExcelStore_SaveFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "estoque.xlsx")
	store := NewExcelStore(path, "", nil)

	err := store.Save(context.Background(), domain.Table{Columns: domain.Fields})
	if !errors.Is(err, domain.ErrResourceWrite) {
		t.Errorf("expected ErrResourceWrite, got: %v", err)
	}
}

func TestExcelStore_EncodeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, groceryRows())

	ctx := context.Background()
	store := NewExcelStore(path, "Sheet1", nil)
	table, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	data, err := store.Encode(table)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	sheets := f.GetSheetList()
	f.Close()
	if len(sheets) != 1 || sheets[0] != "Estoque" {
		t.Errorf("expected single sheet Estoque, got %v", sheets)
	}

	exported := filepath.Join(t.TempDir(), "export.xlsx")
	if err := os.WriteFile(exported, data, 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	reloaded, err := NewExcelStore(exported, "", nil).Load(ctx)
	if err != nil {
		t.Fatalf("reload export: %v", err)
	}
	if !tablesEqual(table, reloaded) {
		t.Errorf("export round trip differs:\nwant %+v\ngot  %+v", table, reloaded)
	}
}

func TestExcelStore_Inspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"X", "Y"},
		{"Sal", 2},
	})

	_, res, err := NewExcelStore(path, "", nil).Inspect(context.Background())
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !res.Fallback {
		t.Error("expected fallback resolution")
	}
}
