package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, branch_id, ingredient_id, type, quantity, unit_cost, total_cost, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.BranchID, movement.IngredientID,
		movement.Type, movement.Quantity, movement.UnitCost, movement.TotalCost,
		nullIfEmpty(movement.Reason), movement.Date, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.transaction_id, m.branch_id, m.ingredient_id, m.type, m.quantity, m.unit_cost, m.total_cost, m.reason, m.date, m.created_at, m.created_by
		FROM stock_movements m WHERE m.id = $1`
	m, err := scanMovementRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// ListByBusiness lista movimientos del negocio con filtros y paginación,
// más reciente primero.
func (r *StockMovementRepo) ListByBusiness(businessID string, filter repository.StockMovementFilter, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.transaction_id, m.branch_id, m.ingredient_id, m.type, m.quantity, m.unit_cost, m.total_cost, m.reason, m.date, m.created_at, m.created_by
		FROM stock_movements m
		JOIN branches b ON b.id = m.branch_id
		WHERE b.business_id = $1`
	args := []any{businessID}
	pos := 2
	if filter.BranchID != "" {
		query += fmt.Sprintf(" AND m.branch_id = $%d", pos)
		args = append(args, filter.BranchID)
		pos++
	}
	if filter.IngredientID != "" {
		query += fmt.Sprintf(" AND m.ingredient_id = $%d", pos)
		args = append(args, filter.IngredientID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND m.date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND m.date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByTransaction lista los movimientos de una misma operación.
func (r *StockMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	query := `
		SELECT m.id, m.transaction_id, m.branch_id, m.ingredient_id, m.type, m.quantity, m.unit_cost, m.total_cost, m.reason, m.date, m.created_at, m.created_by
		FROM stock_movements m WHERE m.transaction_id = $1 ORDER BY m.created_at ASC`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list movements by transaction: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovementRow(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var reason, createdBy *string
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.BranchID, &m.IngredientID, &m.Type,
		&m.Quantity, &m.UnitCost, &m.TotalCost, &reason, &m.Date, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		m.Reason = *reason
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovementRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
