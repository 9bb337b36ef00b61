package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/port"
)

const (
	sheetLockKey       = "sheet"
	DefaultLockTTL     = 10 * time.Second
	DefaultLowestLimit = 10
	idempotencyKeyFmt  = "movement:%s"
	releaseTimeout     = 2 * time.Second
)

var (
	ErrDuplicateRequest = errors.New("duplicate request")
	ErrLedgerDisabled   = errors.New("movement history not configured")
)

type MovementRequest struct {
	RequestID string
	Product   string
	Quantity  decimal.Decimal
	Kind      domain.MovementKind
}

func (r MovementRequest) validate() error {
	if strings.TrimSpace(r.Product) == "" {
		return fmt.Errorf("%w: product is required", domain.ErrInvalidRequest)
	}
	if !r.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if r.Kind != domain.MovementIn && r.Kind != domain.MovementOut {
		return fmt.Errorf("%w: unknown movement kind %q", domain.ErrInvalidRequest, r.Kind)
	}
	return nil
}

type MoveResult struct {
	Movement domain.Movement
	Table    domain.Table
}

type InventoryService struct {
	store   port.SheetStore
	guard   port.CycleGuard
	ledger  port.MovementLedger
	lockTTL time.Duration
	mu      sync.Mutex
	now     func() time.Time
}

// NewInventoryService wires the service. ledger may be nil.
func NewInventoryService(store port.SheetStore, guard port.CycleGuard, ledger port.MovementLedger, lockTTL time.Duration) *InventoryService {
	if lockTTL <= 0 {
		lockTTL = DefaultLockTTL
	}
	return &InventoryService{
		store:   store,
		guard:   guard,
		ledger:  ledger,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

func (s *InventoryService) Table(ctx context.Context, filter string) (domain.Table, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return domain.Table{}, err
	}
	return table.Filter(filter), nil
}

func (s *InventoryService) Products(ctx context.Context, query string) ([]string, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return table.Products(query), nil
}

func (s *InventoryService) Lowest(ctx context.Context, n int) ([]domain.Row, error) {
	if n <= 0 {
		n = DefaultLowestLimit
	}
	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return table.Lowest(n), nil
}

func (s *InventoryService) Export(ctx context.Context) ([]byte, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.store.Encode(table)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

func (s *InventoryService) History(ctx context.Context, product string, limit int) ([]domain.Movement, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	return s.ledger.ListMovements(ctx, product, limit)
}

// Move runs one interaction cycle: reload the sheet, apply a single stock
// movement and write the whole sheet back.
func (s *InventoryService) Move(ctx context.Context, req MovementRequest) (*MoveResult, error) {
	req.Product = strings.TrimSpace(req.Product)
	if err := req.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok, err := s.guard.AcquireLock(ctx, sheetLockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire sheet lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: another update is in progress", domain.ErrResourceLocked)
	}
	defer s.release(token)

	var idempotencyKey string
	if req.RequestID != "" {
		idempotencyKey = fmt.Sprintf(idempotencyKeyFmt, req.RequestID)
		ok, err := s.guard.SetIdempotency(ctx, idempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, ErrDuplicateRequest
		}
	}

	result, err := s.move(ctx, req)
	if err != nil {
		if idempotencyKey != "" {
			if clearErr := s.guard.ClearIdempotency(context.WithoutCancel(ctx), idempotencyKey); clearErr != nil {
				log.Printf("failed to clear idempotency key %s: %v", idempotencyKey, clearErr)
			}
		}
		return nil, err
	}
	return result, nil
}

func (s *InventoryService) move(ctx context.Context, req MovementRequest) (*MoveResult, error) {
	table, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	delta := req.Kind.Signed(req.Quantity)
	updated, change, err := domain.ApplyDelta(table, req.Product, delta)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, updated); err != nil {
		log.Printf("failed to save movement for %s: %v", req.Product, err)
		return nil, err
	}

	movement := domain.Movement{
		ID:          uuid.NewString(),
		RequestID:   req.RequestID,
		Product:     req.Product,
		Kind:        req.Kind,
		Quantity:    req.Quantity,
		Delta:       delta,
		StockBefore: change.Before,
		StockAfter:  change.After,
		CreatedAt:   s.now(),
	}
	log.Printf("stock updated: %s %s -> %s (%s %s)",
		movement.Product, change.Before, change.After, movement.Kind, movement.Quantity)

	if s.ledger != nil {
		if err := s.ledger.RecordMovement(context.WithoutCancel(ctx), movement); err != nil {
			log.Printf("failed to record movement %s: %v", movement.ID, err)
		}
	}

	return &MoveResult{Movement: movement, Table: updated}, nil
}

func (s *InventoryService) release(token string) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()

	if err := s.guard.ReleaseLock(ctx, sheetLockKey, token); err != nil {
		log.Printf("failed to release sheet lock: %v", err)
	}
}
