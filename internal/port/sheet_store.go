package port

import (
	"context"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

type SheetStore interface {
	// Load reads and normalizes the backing spreadsheet
	Load(ctx context.Context) (domain.Table, error)

	// Save overwrites the backing spreadsheet with the whole table
	Save(ctx context.Context, table domain.Table) error

	// Encode renders the table as a downloadable workbook
	Encode(table domain.Table) ([]byte, error)
}
