package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/normalize"
)

const ExportSheetName = "Estoque"

type ExcelStore struct {
	path       string
	sheetName  string
	normalizer *normalize.Normalizer
}

func NewExcelStore(path, sheetName string, normalizer *normalize.Normalizer) *ExcelStore {
	if sheetName == "" {
		sheetName = ExportSheetName
	}
	if normalizer == nil {
		normalizer = normalize.New()
	}
	return &ExcelStore{path: path, sheetName: sheetName, normalizer: normalizer}
}

func (s *ExcelStore) Path() string {
	return s.path
}

func (s *ExcelStore) Load(ctx context.Context) (domain.Table, error) {
	table, res, err := s.load(ctx)
	if err != nil {
		return domain.Table{}, err
	}
	logResolution(s.path, res)
	return table, nil
}

// Inspect loads the sheet and also reports how its headers were resolved.
func (s *ExcelStore) Inspect(ctx context.Context) (domain.Table, normalize.Resolution, error) {
	return s.load(ctx)
}

func (s *ExcelStore) load(ctx context.Context) (domain.Table, normalize.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return domain.Table{}, normalize.Resolution{}, err
	}

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return domain.Table{}, normalize.Resolution{}, domain.NewResourceError(domain.ErrResourceNotFound, s.path, nil)
	}

	raw, err := readFirstSheet(s.path)
	if err != nil {
		return domain.Table{}, normalize.Resolution{}, domain.NewResourceError(domain.ErrResourceRead, s.path, err)
	}

	table, res, err := s.normalizer.Normalize(raw)
	if err != nil {
		return domain.Table{}, normalize.Resolution{}, domain.NewResourceError(domain.ErrResourceRead, s.path, err)
	}
	return table, res, nil
}

func (s *ExcelStore) Save(ctx context.Context, table domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeWorkbook(table, s.sheetName)
	if err != nil {
		return domain.NewResourceError(domain.ErrResourceWrite, s.path, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return domain.NewResourceError(domain.ErrResourceLocked, s.path, err)
		}
		return domain.NewResourceError(domain.ErrResourceWrite, s.path, err)
	}
	return nil
}

func (s *ExcelStore) Encode(table domain.Table) ([]byte, error) {
	return encodeWorkbook(table, ExportSheetName)
}

func readFirstSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func encodeWorkbook(table domain.Table, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != sheetName {
		if err := f.SetSheetName(sheet, sheetName); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
		sheet = sheetName
	}

	headers := make([]interface{}, len(table.Columns))
	for i, field := range table.Columns {
		headers[i] = field.Header()
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := rowValues(row, table.Columns)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(row domain.Row, columns []domain.Field) []interface{} {
	values := make([]interface{}, len(columns))
	for i, field := range columns {
		switch field {
		case domain.FieldProduct:
			values[i] = row.Product
		case domain.FieldPrice:
			if row.Price.Valid {
				values[i] = row.Price.Decimal.InexactFloat64()
			}
		case domain.FieldUnit:
			values[i] = row.Unit
		case domain.FieldStockQty:
			if row.StockQty.Valid {
				values[i] = row.StockQty.Decimal.InexactFloat64()
			}
		}
	}
	return values
}

func logResolution(path string, res normalize.Resolution) {
	if res.Fallback {
		log.Printf("sheet %s: headers not recognized, using first columns by position", path)
		return
	}
	for _, m := range res.Matches {
		log.Printf("sheet %s: %s <- %q (column %d)", path, m.Field, m.Header, m.Column+1)
	}
	if len(res.Ambiguous) > 0 {
		log.Printf("sheet %s: ambiguous fields %v", path, res.Ambiguous)
	}
}
