package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el stock actual de un ingrediente en una sucursal. Si aún no
// hay fila devuelve un nivel en cero (nunca nil).
func (r *StockLevelRepo) Get(branchID, ingredientID string) (*entity.StockLevel, error) {
	query := `
		SELECT branch_id, ingredient_id, quantity, reserved, updated_at
		FROM stock_levels WHERE branch_id = $1 AND ingredient_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, branchID, ingredientID).Scan(
		&s.BranchID, &s.IngredientID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{BranchID: branchID, IngredientID: ingredientID, Quantity: decimal.Zero, Reserved: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE).
func (r *StockLevelRepo) GetForUpdate(branchID, ingredientID string) (*entity.StockLevel, error) {
	query := `
		SELECT branch_id, ingredient_id, quantity, reserved, updated_at
		FROM stock_levels WHERE branch_id = $1 AND ingredient_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, branchID, ingredientID).Scan(
		&s.BranchID, &s.IngredientID, &s.Quantity, &s.Reserved, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{BranchID: branchID, IngredientID: ingredientID, Quantity: decimal.Zero, Reserved: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza cantidad y reserva (por sucursal e ingrediente).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (branch_id, ingredient_id, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (branch_id, ingredient_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved = EXCLUDED.reserved, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		level.BranchID, level.IngredientID, level.Quantity, level.Reserved)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByBranch lista los niveles de una sucursal.
func (r *StockLevelRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT branch_id, ingredient_id, quantity, reserved, updated_at
		FROM stock_levels WHERE branch_id = $1
		ORDER BY ingredient_id ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.BranchID, &s.IngredientID, &s.Quantity, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByIngredient lista los niveles de un ingrediente en todas las sucursales.
func (r *StockLevelRepo) ListByIngredient(ingredientID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT branch_id, ingredient_id, quantity, reserved, updated_at
		FROM stock_levels WHERE ingredient_id = $1 ORDER BY branch_id ASC`
	rows, err := r.q.Query(context.Background(), query, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list stock by ingredient: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.BranchID, &s.IngredientID, &s.Quantity, &s.Reserved, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve los ingredientes cuyo stock disponible
// (quantity - reserved) está bajo su punto de reorden, mayor déficit primero.
func (r *StockLevelRepo) ListBelowReorderPoint(ctx context.Context, businessID, branchID string) ([]repository.StockAlertItem, error) {
	query := `
		SELECT i.id, i.name, i.unit, b.id, b.name,
		       sl.quantity, sl.reserved, i.reorder_point, i.avg_cost
		FROM stock_levels sl
		JOIN ingredients i ON i.id = sl.ingredient_id
		JOIN branches b ON b.id = sl.branch_id
		WHERE i.business_id = $1
		  AND i.status = 'active'
		  AND i.reorder_point > 0
		  AND (sl.quantity - sl.reserved) < i.reorder_point`
	args := []any{businessID}
	if branchID != "" {
		query += ` AND sl.branch_id = $2`
		args = append(args, branchID)
	}
	query += ` ORDER BY (i.reorder_point - (sl.quantity - sl.reserved)) DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var items []repository.StockAlertItem
	for rows.Next() {
		var it repository.StockAlertItem
		if err := rows.Scan(&it.IngredientID, &it.IngredientName, &it.Unit, &it.BranchID, &it.BranchName,
			&it.Quantity, &it.Reserved, &it.ReorderPoint, &it.AvgCost); err != nil {
			return nil, fmt.Errorf("scan alert item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
