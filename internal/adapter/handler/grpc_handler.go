package handler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/status"

	"github.com/rl1809/grocery-stock/internal/adapter/handler/rpc"
	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

type GRPCHandler struct {
	rpc.UnimplementedInventoryServiceServer
	inventoryService *service.InventoryService
}

func NewGRPCHandler(inventoryService *service.InventoryService) *GRPCHandler {
	return &GRPCHandler{inventoryService: inventoryService}
}

func (h *GRPCHandler) GetTable(ctx context.Context, req *rpc.GetTableRequest) (*rpc.GetTableResponse, error) {
	table, err := h.inventoryService.Table(ctx, req.Query)
	if err != nil {
		return nil, grpcError(err)
	}

	columns := make([]string, 0, len(table.Columns))
	for _, f := range table.Columns {
		columns = append(columns, f.String())
	}
	return &rpc.GetTableResponse{Columns: columns, Rows: toRPCRows(table.Rows)}, nil
}

// ApplyMovement reports business rejections in the response body and
// reserves gRPC status errors for unexpected failures.
func (h *GRPCHandler) ApplyMovement(ctx context.Context, req *rpc.ApplyMovementRequest) (*rpc.ApplyMovementResponse, error) {
	quantity, err := decimal.NewFromString(req.GetQuantity())
	if err != nil {
		return &rpc.ApplyMovementResponse{
			Success: false,
			Message: fmt.Sprintf("invalid quantity %q", req.GetQuantity()),
		}, nil
	}

	kind, err := domain.ParseMovementKind(req.GetKind())
	if err != nil {
		return &rpc.ApplyMovementResponse{
			Success: false,
			Message: err.Error(),
		}, nil
	}

	result, err := h.inventoryService.Move(ctx, service.MovementRequest{
		RequestID: req.GetRequestId(),
		Product:   req.GetProduct(),
		Quantity:  quantity,
		Kind:      kind,
	})
	if err != nil {
		_, _, message, known := classify(err)
		if !known {
			log.Printf("grpc movement failed: %v", err)
		}
		return &rpc.ApplyMovementResponse{
			Success: false,
			Message: message,
		}, nil
	}

	return &rpc.ApplyMovementResponse{
		Success:     true,
		Message:     "stock updated",
		MovementId:  result.Movement.ID,
		StockBefore: result.Movement.StockBefore.String(),
		StockAfter:  result.Movement.StockAfter.String(),
	}, nil
}

func (h *GRPCHandler) Lowest(ctx context.Context, req *rpc.LowestRequest) (*rpc.LowestResponse, error) {
	rows, err := h.inventoryService.Lowest(ctx, int(req.Limit))
	if err != nil {
		return nil, grpcError(err)
	}
	return &rpc.LowestResponse{Rows: toRPCRows(rows)}, nil
}

func (h *GRPCHandler) Export(ctx context.Context, req *rpc.ExportRequest) (*rpc.ExportResponse, error) {
	data, err := h.inventoryService.Export(ctx)
	if err != nil {
		return nil, grpcError(err)
	}
	return &rpc.ExportResponse{
		Filename: fmt.Sprintf("estoque_%s.xlsx", time.Now().Format("20060102_150405")),
		Data:     data,
	}, nil
}

func grpcError(err error) error {
	_, code, message, known := classify(err)
	if !known {
		log.Printf("grpc request failed: %v", err)
	}
	return status.Error(code, message)
}

func toRPCRows(rows []domain.Row) []*rpc.Row {
	out := make([]*rpc.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, &rpc.Row{
			Product:  r.Product,
			Price:    nullString(r.Price),
			Unit:     r.Unit,
			StockQty: nullString(r.StockQty),
		})
	}
	return out
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
