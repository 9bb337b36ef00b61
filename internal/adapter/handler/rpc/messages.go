package rpc

// Decimal values travel as strings; an empty string means the cell is absent.
type Row struct {
	Product  string `json:"product"`
	Price    string `json:"price,omitempty"`
	Unit     string `json:"unit,omitempty"`
	StockQty string `json:"stock_qty,omitempty"`
}

type GetTableRequest struct {
	Query string `json:"query,omitempty"`
}

type GetTableResponse struct {
	Columns []string `json:"columns"`
	Rows    []*Row   `json:"rows"`
}

type ApplyMovementRequest struct {
	RequestId string `json:"request_id,omitempty"`
	Product   string `json:"product"`
	Quantity  string `json:"quantity"`
	Kind      string `json:"kind,omitempty"`
}

func (r *ApplyMovementRequest) GetRequestId() string {
	if r == nil {
		return ""
	}
	return r.RequestId
}

func (r *ApplyMovementRequest) GetProduct() string {
	if r == nil {
		return ""
	}
	return r.Product
}

func (r *ApplyMovementRequest) GetQuantity() string {
	if r == nil {
		return ""
	}
	return r.Quantity
}

func (r *ApplyMovementRequest) GetKind() string {
	if r == nil {
		return ""
	}
	return r.Kind
}

type ApplyMovementResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	MovementId  string `json:"movement_id,omitempty"`
	StockBefore string `json:"stock_before,omitempty"`
	StockAfter  string `json:"stock_after,omitempty"`
}

type LowestRequest struct {
	Limit int32 `json:"limit,omitempty"`
}

type LowestResponse struct {
	Rows []*Row `json:"rows"`
}

type ExportRequest struct{}

type ExportResponse struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}
