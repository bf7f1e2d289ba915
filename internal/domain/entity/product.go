package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (bebidas y acompañamientos de la carta).
const (
	ProductCategoryEspresso   = "espresso"
	ProductCategoryFiltrado   = "filtrado"
	ProductCategoryFrio       = "frio"
	ProductCategoryReposteria = "reposteria"
	ProductCategoryOtro       = "otro"
)

// Estados de producto.
const (
	ProductStatusActive = "active"
	ProductStatusDraft  = "draft"
)

// Product representa un producto de la carta (bebida por taza).
// COGSPerCup es el costo de insumos por taza, materializado a partir de la
// receta: Σ(usage_per_cup × unit_cost del ingrediente). Se recalcula al editar
// la receta o al cambiar el costo de un ingrediente usado.
type Product struct {
	ID         string
	BusinessID string
	SKU        string // código único por negocio
	Name       string
	Category   string // ver constantes ProductCategory*
	SalePrice  decimal.Decimal
	COGSPerCup decimal.Decimal
	Status     string // active, draft
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MarginPct devuelve el margen bruto porcentual: (precio - COGS) / precio × 100.
// Devuelve cero si el precio no es positivo.
func (p *Product) MarginPct() decimal.Decimal {
	if p.SalePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return p.SalePrice.Sub(p.COGSPerCup).Div(p.SalePrice).Mul(hundred).Round(2)
}
