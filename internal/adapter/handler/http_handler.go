package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-stock/internal/core/domain"
	"github.com/rl1809/grocery-stock/internal/core/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type HTTPHandler struct {
	inventoryService *service.InventoryService
}

// MovementHTTPRequest accepts quantity as a JSON number or a string.
type MovementHTTPRequest struct {
	RequestID string          `json:"request_id"`
	Product   string          `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	Kind      string          `json:"kind"`
}

type MovementHTTPResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Movement *domain.Movement `json:"movement,omitempty"`
}

type TableHTTPResponse struct {
	Columns []domain.Field `json:"columns"`
	Rows    []domain.Row   `json:"rows"`
	Count   int            `json:"count"`
}

type ErrorHTTPResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(inventoryService *service.InventoryService) *HTTPHandler {
	return &HTTPHandler{inventoryService: inventoryService}
}

// Routes wires up the HTTP API.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/", h.GetTable)
		r.Get("/products", h.ListProducts)
		r.Get("/lowest", h.Lowest)
		r.Get("/export", h.Export)
		r.Post("/movements", h.ApplyMovement)
		r.Get("/movements", h.History)
	})

	return r
}

func (h *HTTPHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.inventoryService.Table(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TableHTTPResponse{
		Columns: table.Columns,
		Rows:    nonNilRows(table.Rows),
		Count:   len(table.Rows),
	})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.inventoryService.Products(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *HTTPHandler) Lowest(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: err.Error()})
		return
	}

	rows, err := h.inventoryService.Lowest(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": nonNilRows(rows)})
}

func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.inventoryService.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("estoque_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("failed to write export: %v", err)
	}
}

func (h *HTTPHandler) ApplyMovement(w http.ResponseWriter, r *http.Request) {
	var req MovementHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, MovementHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	kind, err := domain.ParseMovementKind(req.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, MovementHTTPResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	result, err := h.inventoryService.Move(r.Context(), service.MovementRequest{
		RequestID: req.RequestID,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Kind:      kind,
	})
	if err != nil {
		status, _, message, known := classify(err)
		if !known {
			log.Printf("movement failed: %v", err)
		}
		writeJSON(w, status, MovementHTTPResponse{
			Success: false,
			Message: message,
		})
		return
	}

	writeJSON(w, http.StatusOK, MovementHTTPResponse{
		Success:  true,
		Message:  "stock updated",
		Movement: &result.Movement,
	})
}

func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorHTTPResponse{Error: err.Error()})
		return
	}

	movements, err := h.inventoryService.History(r.Context(), r.URL.Query().Get("product"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if movements == nil {
		movements = []domain.Movement{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"movements": movements})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func nonNilRows(rows []domain.Row) []domain.Row {
	if rows == nil {
		return []domain.Row{}
	}
	return rows
}

func writeError(w http.ResponseWriter, err error) {
	status, _, message, known := classify(err)
	if !known {
		log.Printf("request failed: %v", err)
	}
	writeJSON(w, status, ErrorHTTPResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
