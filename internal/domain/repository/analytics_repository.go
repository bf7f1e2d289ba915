package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductionStats resultado crudo de la consulta de producción en un rango.
type ProductionStats struct {
	Batches   int             // lotes confirmados
	Cups      int64           // tazas producidas
	TotalCost decimal.Decimal // costo total de producción
}

// ProductMarginResult resultado crudo del ranking de margen por producto.
type ProductMarginResult struct {
	ProductID  string
	SKU        string
	Name       string
	SalePrice  decimal.Decimal
	COGSPerCup decimal.Decimal
	MarginPct  decimal.Decimal // (precio - cogs) / precio × 100
}

// TargetsSummary resultado crudo de la suma de metas en un rango.
type TargetsSummary struct {
	Days        int             // días con meta definida
	TotalAmount decimal.Decimal // suma de metas en dinero
	TotalCups   int64           // suma de metas en tazas
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// CountCatalog devuelve cuántos ingredientes y productos tiene el negocio.
	CountCatalog(ctx context.Context, businessID string) (ingredients, products int, err error)

	// GetStockValuation devuelve Σ(cantidad × costo promedio) del stock del
	// negocio. Con branchID vacío suma todas las sucursales.
	GetStockValuation(ctx context.Context, businessID, branchID string) (decimal.Decimal, error)

	// CountLowStock cuenta ingredientes bajo su punto de reorden.
	CountLowStock(ctx context.Context, businessID string) (int, error)

	// GetProductionStats agrega los lotes COMMITTED del rango [from, to).
	GetProductionStats(ctx context.Context, businessID string, from, to time.Time) (ProductionStats, error)

	// GetTopProductsByMargin devuelve los `limit` productos activos con mayor
	// margen de catálogo, descendente.
	GetTopProductsByMargin(ctx context.Context, businessID string, limit int) ([]ProductMarginResult, error)

	// GetTargetsSummary agrega las metas del rango [from, to].
	GetTargetsSummary(ctx context.Context, businessID string, from, to time.Time) (TargetsSummary, error)
}
