package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlanProductionRequest body para POST /api/production-batches: planificar
// la producción de Quantity tazas de un producto en una sucursal.
type PlanProductionRequest struct {
	BranchID  string `json:"branch_id" validate:"required,uuid"`
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Note      string `json:"note,omitempty"`
}

// ProductionLineResponse una línea congelada del lote.
type ProductionLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Unit           string          `json:"unit,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// ProductionBatchResponse salida de un lote de producción.
type ProductionBatchResponse struct {
	ID          string                   `json:"id"`
	BranchID    string                   `json:"branch_id"`
	ProductID   string                   `json:"product_id"`
	ProductName string                   `json:"product_name,omitempty"`
	Quantity    int64                    `json:"quantity"`
	Status      string                   `json:"status"`
	TotalCost   decimal.Decimal          `json:"total_cost"`
	CostPerCup  decimal.Decimal          `json:"cost_per_cup"`
	Note        string                   `json:"note,omitempty"`
	Lines       []ProductionLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	CommittedAt *time.Time               `json:"committed_at,omitempty"`
}

// ProductionBatchListResponse lista paginada de lotes de producción.
type ProductionBatchListResponse struct {
	Items []ProductionBatchResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}

// ShortageDetail faltante de un ingrediente al planificar.
type ShortageDetail struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	Needed         decimal.Decimal `json:"needed"`
	Available      decimal.Decimal `json:"available"`
	Missing        decimal.Decimal `json:"missing"`
}

// InsufficientStockResponse cuerpo del 409 al planificar sin stock disponible.
type InsufficientStockResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Shortages []ShortageDetail `json:"shortages"`
}
