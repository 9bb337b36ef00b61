package port

import (
	"context"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

type MovementLedger interface {
	// RecordMovement appends a stock movement to the history
	RecordMovement(ctx context.Context, movement domain.Movement) error

	// ListMovements returns the newest movements first, optionally for one product
	ListMovements(ctx context.Context, product string, limit int) ([]domain.Movement, error)
}
