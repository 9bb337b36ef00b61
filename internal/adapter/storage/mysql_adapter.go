package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/grocery-stock/internal/core/domain"
)

const defaultHistoryLimit = 50

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS stock_movements (
			id           CHAR(36)       NOT NULL PRIMARY KEY,
			request_id   VARCHAR(128)   NULL,
			product      VARCHAR(255)   NOT NULL,
			kind         VARCHAR(8)     NOT NULL,
			quantity     DECIMAL(18, 4) NOT NULL,
			delta        DECIMAL(18, 4) NOT NULL,
			stock_before DECIMAL(18, 4) NOT NULL,
			stock_after  DECIMAL(18, 4) NOT NULL,
			created_at   DATETIME(6)    NOT NULL,
			INDEX idx_stock_movements_product (product, created_at)
		)`)
	if err != nil {
		return fmt.Errorf("create stock_movements: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) RecordMovement(ctx context.Context, mv domain.Movement) error {
	var requestID sql.NullString
	if mv.RequestID != "" {
		requestID = sql.NullString{String: mv.RequestID, Valid: true}
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO stock_movements
			(id, request_id, product, kind, quantity, delta, stock_before, stock_after, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mv.ID, requestID, mv.Product, string(mv.Kind), mv.Quantity, mv.Delta,
		mv.StockBefore, mv.StockAfter, mv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) ListMovements(ctx context.Context, product string, limit int) ([]domain.Movement, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	query := `
		SELECT id, request_id, product, kind, quantity, delta, stock_before, stock_after, created_at
		FROM stock_movements`
	args := []interface{}{}
	if product != "" {
		query += ` WHERE product = ?`
		args = append(args, product)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		var (
			mv        domain.Movement
			requestID sql.NullString
			kind      string
		)
		if err := rows.Scan(&mv.ID, &requestID, &mv.Product, &kind, &mv.Quantity, &mv.Delta,
			&mv.StockBefore, &mv.StockAfter, &mv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		mv.RequestID = requestID.String
		mv.Kind = domain.MovementKind(kind)
		movements = append(movements, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}

	return movements, nil
}
