package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto de la carta.
type CreateProductRequest struct {
	SKU       string          `json:"sku" validate:"required,min=1,max=100"`
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Category  string          `json:"category" validate:"omitempty,oneof=espresso filtrado frio reposteria otro"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Status    string          `json:"status" validate:"omitempty,oneof=active draft"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	SKU       *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string          `json:"category" validate:"omitempty,oneof=espresso filtrado frio reposteria otro"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	Status    *string          `json:"status" validate:"omitempty,oneof=active draft"`
}

// ProductResponse salida de un producto. MarginPct y MarginAmount son
// derivados del precio y el COGS materializado.
type ProductResponse struct {
	ID           string          `json:"id"`
	BusinessID   string          `json:"business_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	COGSPerCup   decimal.Decimal `json:"cogs_per_cup"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
	MarginAmount decimal.Decimal `json:"margin_amount"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// RecipeLineRequest un renglón del body de PUT /api/products/:id/recipe.
type RecipeLineRequest struct {
	IngredientID string          `json:"ingredient_id" validate:"required,uuid"`
	UsagePerCup  decimal.Decimal `json:"usage_per_cup"`
}

// ReplaceRecipeRequest body de PUT /api/products/:id/recipe: reemplaza la
// receta completa de forma atómica.
type ReplaceRecipeRequest struct {
	Lines []RecipeLineRequest `json:"lines" validate:"required,dive"`
}

// RecipeLineResponse un renglón de la receta con su aporte al costo.
type RecipeLineResponse struct {
	IngredientID   string          `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Unit           string          `json:"unit"`
	UsagePerCup    decimal.Decimal `json:"usage_per_cup"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	LineCost       decimal.Decimal `json:"line_cost"`
	SharePct       decimal.Decimal `json:"share_pct"`
}

// RecipeResponse la receta de un producto con el COGS total.
type RecipeResponse struct {
	ProductID  string               `json:"product_id"`
	Lines      []RecipeLineResponse `json:"lines"`
	COGSPerCup decimal.Decimal      `json:"cogs_per_cup"`
}
