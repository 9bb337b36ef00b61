package handler

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rl1809/grocery-stock/internal/adapter/storage"
	"github.com/rl1809/grocery-stock/internal/core/normalize"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

func newTestService(t *testing.T) (*service.InventoryService, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "estoque.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Produto", "Preço", "Unidade", "Estoque"},
		{"Arroz", 25.9, "kg", 10},
		{"Feijão", 8.5, "kg", 3},
		{"Café", 15, "un", 0},
		{"Açúcar", 4.99, "kg", nil},
	}
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

	store := storage.NewExcelStore(path, "", normalize.New())
	svc := service.NewInventoryService(store, storage.NewMemoryGuard(), nil, 0)
	return svc, path
}
