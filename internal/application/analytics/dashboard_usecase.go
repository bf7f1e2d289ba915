// Package analytics contiene el caso de uso del dashboard de inicio: la foto
// del día del negocio (catálogo, stock, producción, metas y recorrido).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

const dashboardTopProducts = 5 // productos en el widget de margen

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) más el recorrido
// de puesta en marcha. No toca tablas directamente; delega en los repositorios.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	journeyRepo   repository.JourneyRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, journeyRepo repository.JourneyRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, journeyRepo: journeyRepo}
}

// GetSummary construye el DashboardSummaryDTO para el negocio indicado.
//
// Las consultas de analítica corren en paralelo:
//  1. CountCatalog                  → Ingredients + Products
//  2. GetStockValuation             → StockValuation
//  3. CountLowStock                 → LowStockAlerts
//  4. GetProductionStats(hoy)       → TodayBatches/Cups/Cost
//  5. GetProductionStats(mes)       → MonthlyBatches/Cups/Cost
//  6. GetTargetsSummary(hoy)        → TodayTargetAmount/Cups
//  7. GetTopProductsByMargin(top 5) → TopProducts
func (uc *DashboardUseCase) GetSummary(
	ctx context.Context,
	businessID string,
) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: [00:00, 24:00). Mes en curso: día 1 a las 00:00 hasta fin de hoy.
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24 * time.Hour)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type catalogResult struct {
		ingredients int
		products    int
		err         error
	}
	type valuationResult struct {
		valuation decimal.Decimal
		err       error
	}
	type countResult struct {
		count int
		err   error
	}
	type statsResult struct {
		stats repository.ProductionStats
		err   error
	}
	type targetsResult struct {
		summary repository.TargetsSummary
		err     error
	}
	type topResult struct {
		products []repository.ProductMarginResult
		err      error
	}

	catalogCh := make(chan catalogResult, 1)
	valuationCh := make(chan valuationResult, 1)
	lowStockCh := make(chan countResult, 1)
	todayCh := make(chan statsResult, 1)
	monthCh := make(chan statsResult, 1)
	targetsCh := make(chan targetsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		ingredients, products, err := uc.analyticsRepo.CountCatalog(ctx, businessID)
		catalogCh <- catalogResult{ingredients, products, err}
	}()
	go func() {
		valuation, err := uc.analyticsRepo.GetStockValuation(ctx, businessID, "")
		valuationCh <- valuationResult{valuation, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountLowStock(ctx, businessID)
		lowStockCh <- countResult{count, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.GetProductionStats(ctx, businessID, todayStart, todayEnd)
		todayCh <- statsResult{stats, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.GetProductionStats(ctx, businessID, monthStart, todayEnd)
		monthCh <- statsResult{stats, err}
	}()
	go func() {
		summary, err := uc.analyticsRepo.GetTargetsSummary(ctx, businessID, todayStart, todayStart)
		targetsCh <- targetsResult{summary, err}
	}()
	go func() {
		products, err := uc.analyticsRepo.GetTopProductsByMargin(ctx, businessID, dashboardTopProducts)
		topCh <- topResult{products, err}
	}()

	catalog := <-catalogCh
	valuation := <-valuationCh
	lowStock := <-lowStockCh
	today := <-todayCh
	month := <-monthCh
	targets := <-targetsCh
	top := <-topCh

	if catalog.err != nil {
		return nil, fmt.Errorf("dashboard: catálogo: %w", catalog.err)
	}
	if valuation.err != nil {
		return nil, fmt.Errorf("dashboard: valorización de stock: %w", valuation.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: alertas de stock: %w", lowStock.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: producción de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: producción del mes: %w", month.err)
	}
	if targets.err != nil {
		return nil, fmt.Errorf("dashboard: metas de hoy: %w", targets.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}

	// ── Recorrido de puesta en marcha ─────────────────────────────────────────
	progress := 0
	if steps, err := uc.journeyRepo.ListByBusiness(businessID); err == nil && len(steps) > 0 {
		done := 0
		for _, s := range steps {
			if s.Completed {
				done++
			}
		}
		progress = done * 100 / len(steps)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	topProducts := make([]dto.TopProductDTO, 0, len(top.products))
	for _, p := range top.products {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID:  p.ProductID,
			SKU:        p.SKU,
			Name:       p.Name,
			SalePrice:  p.SalePrice,
			COGSPerCup: p.COGSPerCup,
			MarginPct:  p.MarginPct,
		})
	}

	return &dto.DashboardSummaryDTO{
		Ingredients:        catalog.ingredients,
		Products:           catalog.products,
		StockValuation:     valuation.valuation.Round(2),
		LowStockAlerts:     lowStock.count,
		TodayBatches:       today.stats.Batches,
		TodayCups:          today.stats.Cups,
		TodayCost:          today.stats.TotalCost.Round(2),
		MonthlyBatches:     month.stats.Batches,
		MonthlyCups:        month.stats.Cups,
		MonthlyCost:        month.stats.TotalCost.Round(2),
		TodayTargetAmount:  targets.summary.TotalAmount,
		TodayTargetCups:    targets.summary.TotalCups,
		TopProducts:        topProducts,
		JourneyProgressPct: progress,
		DateLabel:          monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Agosto 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
