package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveBatchRequest body para POST /api/warehouse/batches (recepción de lote).
type ReceiveBatchRequest struct {
	BranchID     string          `json:"branch_id" validate:"required,uuid"`
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	ReceivedAt   *time.Time      `json:"received_at,omitempty"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// WarehouseBatchResponse salida de un lote recibido.
type WarehouseBatchResponse struct {
	ID           string          `json:"id"`
	BranchID     string          `json:"branch_id"`
	IngredientID string          `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReceivedAt   time.Time       `json:"received_at"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	Note         string          `json:"note,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// WarehouseBatchListResponse lista paginada de lotes.
type WarehouseBatchListResponse struct {
	Items []WarehouseBatchResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}

// RegisterMovementRequest body para POST /api/warehouse/movements.
// ADJUSTMENT: BranchID + Quantity con signo (positivo suma, negativo resta).
// TRANSFER: FromBranchID + ToBranchID + Quantity > 0.
// IN y OUT no se aceptan por esta vía (IN entra por lotes; OUT por producción).
type RegisterMovementRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	BranchID     string          `json:"branch_id,omitempty"`
	FromBranchID string          `json:"from_branch_id,omitempty"`
	ToBranchID   string          `json:"to_branch_id,omitempty"`
	Type         string          `json:"type" validate:"required,oneof=ADJUSTMENT TRANSFER"`
	Quantity     decimal.Decimal `json:"quantity"`
	Reason       string          `json:"reason,omitempty"`
}

// StockLevelResponse nivel de stock de un ingrediente en una sucursal.
type StockLevelResponse struct {
	BranchID       string          `json:"branch_id"`
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Reserved       decimal.Decimal `json:"reserved"`
	Available      decimal.Decimal `json:"available"`
	ReorderPoint   decimal.Decimal `json:"reorder_point"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockListResponse niveles de una sucursal.
type StockListResponse struct {
	BranchID string               `json:"branch_id"`
	Items    []StockLevelResponse `json:"items"`
	Page     PageResponse         `json:"page"`
}

// MovementResponse un asiento del libro de movimientos.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	BranchID      string          `json:"branch_id"`
	IngredientID  string          `json:"ingredient_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Reason        string          `json:"reason,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// MovementListResponse libro de movimientos paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockAlertResponse un ingrediente bajo su punto de reorden.
type StockAlertResponse struct {
	IngredientID      string          `json:"ingredient_id"`
	IngredientName    string          `json:"ingredient_name"`
	Unit              string          `json:"unit"`
	BranchID          string          `json:"branch_id"`
	BranchName        string          `json:"branch_name"`
	Available         decimal.Decimal `json:"available"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	Deficit           decimal.Decimal `json:"deficit"`             // reorder_point - available
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // ideal (reorden × 1.5) - disponible
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`      // sugerido × costo promedio
}

// StockAlertListResponse alertas de reposición, mayor déficit primero.
type StockAlertListResponse struct {
	Items []StockAlertResponse `json:"items"`
}
