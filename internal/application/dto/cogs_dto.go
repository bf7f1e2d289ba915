package dto

import "github.com/shopspring/decimal"

// PlaygroundLineRequest un renglón del simulador de COGS. Dos formas:
// con IngredientID toma el costo del catálogo; sin él, los campos ad-hoc
// (Name, BaseUnitCost, BaseUnitQty) definen un ingrediente hipotético.
type PlaygroundLineRequest struct {
	IngredientID string          `json:"ingredient_id,omitempty"`
	Name         string          `json:"name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	BaseUnitCost decimal.Decimal `json:"base_unit_cost,omitempty"`
	BaseUnitQty  decimal.Decimal `json:"base_unit_qty,omitempty"`
	UsagePerCup  decimal.Decimal `json:"usage_per_cup"`
}

// PlaygroundRequest body de POST /api/cogs/playground. Nada se persiste.
type PlaygroundRequest struct {
	SalePrice       *decimal.Decimal        `json:"sale_price,omitempty"`
	TargetMarginPct *decimal.Decimal        `json:"target_margin_pct,omitempty"`
	Lines           []PlaygroundLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PlaygroundLineResponse un renglón simulado con su costo.
type PlaygroundLineResponse struct {
	IngredientID string          `json:"ingredient_id,omitempty"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	UsagePerCup  decimal.Decimal `json:"usage_per_cup"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LineCost     decimal.Decimal `json:"line_cost"`
	SharePct     decimal.Decimal `json:"share_pct"`
}

// PlaygroundResponse resultado del simulador. Los campos de margen solo se
// incluyen cuando el request trae sale_price; SuggestedPrice cuando trae
// target_margin_pct.
type PlaygroundResponse struct {
	Lines          []PlaygroundLineResponse `json:"lines"`
	COGSPerCup     decimal.Decimal          `json:"cogs_per_cup"`
	SalePrice      *decimal.Decimal         `json:"sale_price,omitempty"`
	MarginPct      *decimal.Decimal         `json:"margin_pct,omitempty"`
	MarkupPct      *decimal.Decimal         `json:"markup_pct,omitempty"`
	MarginAmount   *decimal.Decimal         `json:"margin_amount,omitempty"`
	SuggestedPrice *decimal.Decimal         `json:"suggested_price,omitempty"`
}
