package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIngredientRequest entrada para crear un ingrediente.
// El costo se captura como presentación: BaseUnitCost por BaseUnitQty unidades.
type CreateIngredientRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"omitempty,oneof=cafe lacteo endulzante empaque otro"`
	Unit         string          `json:"unit" validate:"required,oneof=g ml unidad"`
	BaseUnitCost decimal.Decimal `json:"base_unit_cost"`
	BaseUnitQty  decimal.Decimal `json:"base_unit_qty"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// UpdateIngredientRequest entrada para actualizar un ingrediente (campos opcionales).
type UpdateIngredientRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category" validate:"omitempty,oneof=cafe lacteo endulzante empaque otro"`
	Unit         *string          `json:"unit" validate:"omitempty,oneof=g ml unidad"`
	BaseUnitCost *decimal.Decimal `json:"base_unit_cost"`
	BaseUnitQty  *decimal.Decimal `json:"base_unit_qty"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	Status       *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// IngredientResponse salida de un ingrediente. UnitCost es derivado
// (base_unit_cost / base_unit_qty) y AvgCost es el promedio ponderado de bodega.
type IngredientResponse struct {
	ID           string          `json:"id"`
	BusinessID   string          `json:"business_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	BaseUnitCost decimal.Decimal `json:"base_unit_cost"`
	BaseUnitQty  decimal.Decimal `json:"base_unit_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// IngredientListResponse lista paginada de ingredientes.
type IngredientListResponse struct {
	Items []IngredientResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
