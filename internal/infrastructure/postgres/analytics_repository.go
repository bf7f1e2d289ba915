package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountCatalog devuelve cuántos ingredientes y productos tiene el negocio.
func (r *AnalyticsRepo) CountCatalog(ctx context.Context, businessID string) (ingredients, products int, err error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM ingredients WHERE business_id = $1),
	    (SELECT COUNT(*) FROM products    WHERE business_id = $1)`
	err = r.pool.QueryRow(ctx, query, businessID).Scan(&ingredients, &products)
	if err != nil {
		return 0, 0, fmt.Errorf("analytics.CountCatalog: %w", err)
	}
	return ingredients, products, nil
}

// GetStockValuation devuelve Σ(cantidad × costo promedio) del stock del negocio.
// Usa COALESCE para devolver cero si no hay stock todavía.
func (r *AnalyticsRepo) GetStockValuation(ctx context.Context, businessID, branchID string) (decimal.Decimal, error) {
	query := `
	SELECT COALESCE(SUM(sl.quantity * i.avg_cost), 0)
	FROM stock_levels sl
	JOIN ingredients i ON i.id = sl.ingredient_id
	WHERE i.business_id = $1`
	args := []any{businessID}
	if branchID != "" {
		query += ` AND sl.branch_id = $2`
		args = append(args, branchID)
	}
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetStockValuation: %w", err)
	}
	return total, nil
}

// CountLowStock cuenta pares (sucursal, ingrediente) con disponible bajo el
// punto de reorden.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context, businessID string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM stock_levels sl
	JOIN ingredients i ON i.id = sl.ingredient_id
	WHERE i.business_id = $1
	  AND i.status = 'active'
	  AND i.reorder_point > 0
	  AND (sl.quantity - sl.reserved) < i.reorder_point`
	var count int
	if err := r.pool.QueryRow(ctx, query, businessID).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return count, nil
}

// GetProductionStats agrega los lotes COMMITTED del rango [from, to).
// Usa COALESCE para devolver ceros en períodos sin producción.
func (r *AnalyticsRepo) GetProductionStats(ctx context.Context, businessID string, from, to time.Time) (repository.ProductionStats, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(quantity),   0),
	    COALESCE(SUM(total_cost), 0)
	FROM production_batches
	WHERE business_id = $1
	  AND status = $2
	  AND committed_at >= $3 AND committed_at < $4`
	var stats repository.ProductionStats
	err := r.pool.QueryRow(ctx, query, businessID, entity.ProductionStatusCommitted, from, to).
		Scan(&stats.Batches, &stats.Cups, &stats.TotalCost)
	if err != nil {
		return repository.ProductionStats{}, fmt.Errorf("analytics.GetProductionStats: %w", err)
	}
	return stats, nil
}

// GetTopProductsByMargin devuelve los `limit` productos activos con mayor
// margen de catálogo, descendente. El margen se calcula como
// (precio - cogs) / precio * 100, protegido contra división por cero.
func (r *AnalyticsRepo) GetTopProductsByMargin(ctx context.Context, businessID string, limit int) ([]repository.ProductMarginResult, error) {
	const query = `
	SELECT
	    id, sku, name, sale_price, cogs_per_cup,
	    CASE WHEN sale_price > 0
	         THEN ROUND((sale_price - cogs_per_cup) / sale_price * 100, 2)
	         ELSE 0
	    END AS margin_pct
	FROM products
	WHERE business_id = $1 AND status = 'active'
	ORDER BY margin_pct DESC, sale_price DESC
	LIMIT $2`
	rows, err := r.pool.Query(ctx, query, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProductsByMargin: %w", err)
	}
	defer rows.Close()
	var results []repository.ProductMarginResult
	for rows.Next() {
		var row repository.ProductMarginResult
		if err := rows.Scan(&row.ProductID, &row.SKU, &row.Name, &row.SalePrice,
			&row.COGSPerCup, &row.MarginPct); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProductsByMargin scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTargetsSummary agrega las metas del rango [from, to].
func (r *AnalyticsRepo) GetTargetsSummary(ctx context.Context, businessID string, from, to time.Time) (repository.TargetsSummary, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COALESCE(SUM(target_amount), 0),
	    COALESCE(SUM(target_cups),   0)
	FROM daily_sales_targets
	WHERE business_id = $1
	  AND date >= $2 AND date <= $3`
	var summary repository.TargetsSummary
	err := r.pool.QueryRow(ctx, query, businessID, from, to).
		Scan(&summary.Days, &summary.TotalAmount, &summary.TotalCups)
	if err != nil {
		return repository.TargetsSummary{}, fmt.Errorf("analytics.GetTargetsSummary: %w", err)
	}
	return summary, nil
}
