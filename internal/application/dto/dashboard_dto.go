package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Reúne en una sola llamada los KPIs del día y del mes en curso.
type DashboardSummaryDTO struct {
	// Catálogo
	Ingredients int `json:"ingredients"`
	Products    int `json:"products"`

	// Bodega
	StockValuation decimal.Decimal `json:"stock_valuation"` // Σ cantidad × costo promedio
	LowStockAlerts int             `json:"low_stock_alerts"`

	// Producción de hoy (00:00 – ahora) y del mes (día 1 – hoy)
	TodayBatches   int             `json:"today_batches"`
	TodayCups      int64           `json:"today_cups"`
	TodayCost      decimal.Decimal `json:"today_cost"`
	MonthlyBatches int             `json:"monthly_batches"`
	MonthlyCups    int64           `json:"monthly_cups"`
	MonthlyCost    decimal.Decimal `json:"monthly_cost"`

	// Metas de hoy
	TodayTargetAmount decimal.Decimal `json:"today_target_amount"`
	TodayTargetCups   int64           `json:"today_target_cups"`

	// Top productos por margen de catálogo (mayor a menor)
	TopProducts []TopProductDTO `json:"top_products"`

	// Avance del recorrido de puesta en marcha
	JourneyProgressPct int `json:"journey_progress_pct"`

	// Metadatos del período
	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}

// TopProductDTO resumen de un producto para el widget del dashboard.
type TopProductDTO struct {
	ProductID  string          `json:"product_id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	SalePrice  decimal.Decimal `json:"sale_price"`
	COGSPerCup decimal.Decimal `json:"cogs_per_cup"`
	MarginPct  decimal.Decimal `json:"margin_pct"`
}
