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

var _ repository.WarehouseBatchRepository = (*WarehouseBatchRepo)(nil)

// WarehouseBatchRepo implementación del puerto WarehouseBatchRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseBatchRepo struct {
	q Querier
}

// NewWarehouseBatchRepository construye el adaptador de persistencia para lotes de bodega. Pasar pool o tx (Querier).
func NewWarehouseBatchRepository(q Querier) *WarehouseBatchRepo {
	return &WarehouseBatchRepo{q: q}
}

// Create persiste un lote recibido.
func (r *WarehouseBatchRepo) Create(batch *entity.WarehouseBatch) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO warehouse_batches (id, business_id, branch_id, ingredient_id, quantity, total_cost, unit_cost, received_at, expires_at, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if batch.CreatedBy != "" {
		createdBy = &batch.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.BusinessID, batch.BranchID, batch.IngredientID,
		batch.Quantity, batch.TotalCost, batch.UnitCost, batch.ReceivedAt,
		batch.ExpiresAt, nullIfEmpty(batch.Note), createdBy, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert warehouse batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *WarehouseBatchRepo) GetByID(id string) (*entity.WarehouseBatch, error) {
	query := `
		SELECT id, business_id, branch_id, ingredient_id, quantity, total_cost, unit_cost, received_at, expires_at, note, created_by, created_at
		FROM warehouse_batches WHERE id = $1`
	var b entity.WarehouseBatch
	var note, createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.BusinessID, &b.BranchID, &b.IngredientID, &b.Quantity,
		&b.TotalCost, &b.UnitCost, &b.ReceivedAt, &b.ExpiresAt, &note, &createdBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse batch: %w", err)
	}
	if note != nil {
		b.Note = *note
	}
	if createdBy != nil {
		b.CreatedBy = *createdBy
	}
	return &b, nil
}

// ListByBusiness lista lotes del negocio, últimos recibidos primero.
func (r *WarehouseBatchRepo) ListByBusiness(businessID string, filter repository.WarehouseBatchFilter, limit, offset int) ([]*entity.WarehouseBatch, error) {
	query := `
		SELECT id, business_id, branch_id, ingredient_id, quantity, total_cost, unit_cost, received_at, expires_at, note, created_by, created_at
		FROM warehouse_batches WHERE business_id = $1`
	args := []any{businessID}
	pos := 2
	if filter.BranchID != "" {
		query += fmt.Sprintf(" AND branch_id = $%d", pos)
		args = append(args, filter.BranchID)
		pos++
	}
	if filter.IngredientID != "" {
		query += fmt.Sprintf(" AND ingredient_id = $%d", pos)
		args = append(args, filter.IngredientID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY received_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list warehouse batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseBatch
	for rows.Next() {
		var b entity.WarehouseBatch
		var note, createdBy *string
		if err := rows.Scan(&b.ID, &b.BusinessID, &b.BranchID, &b.IngredientID, &b.Quantity,
			&b.TotalCost, &b.UnitCost, &b.ReceivedAt, &b.ExpiresAt, &note, &createdBy, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse batch: %w", err)
		}
		if note != nil {
			b.Note = *note
		}
		if createdBy != nil {
			b.CreatedBy = *createdBy
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
