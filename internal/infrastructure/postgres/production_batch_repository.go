package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

// ProductionBatchRepo implementación de ProductionBatchRepository sobre PostgreSQL (usable con pool o tx).
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

// Create persiste la cabecera del lote y todas sus líneas congeladas.
func (r *ProductionBatchRepo) Create(batch *entity.ProductionBatch, lines []*entity.ProductionBatchLine) error {
	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_batches (id, business_id, branch_id, product_id, quantity, status, total_cost, note, created_by, created_at, updated_at, committed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	createdBy := (*string)(nil)
	if batch.CreatedBy != "" {
		createdBy = &batch.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.BusinessID, batch.BranchID, batch.ProductID, batch.Quantity,
		batch.Status, batch.TotalCost, nullIfEmpty(batch.Note), createdBy,
		batch.CreatedAt, batch.UpdatedAt, batch.CommittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert production batch: %w", err)
	}
	for _, line := range lines {
		if line.ID == "" {
			line.ID = uuid.New().String()
		}
		line.BatchID = batch.ID
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO production_batch_lines (id, batch_id, ingredient_id, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5)`,
			line.ID, line.BatchID, line.IngredientID, line.Quantity, line.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert production batch line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la cabecera de un lote por ID.
func (r *ProductionBatchRepo) GetByID(id string) (*entity.ProductionBatch, error) {
	query := `
		SELECT id, business_id, branch_id, product_id, quantity, status, total_cost, note, created_by, created_at, updated_at, committed_at
		FROM production_batches WHERE id = $1`
	b, err := scanProductionBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch: %w", err)
	}
	return b, nil
}

// GetByIDForUpdate obtiene la cabecera y bloquea la fila para la transición
// de estado (SELECT FOR UPDATE).
func (r *ProductionBatchRepo) GetByIDForUpdate(id string) (*entity.ProductionBatch, error) {
	query := `
		SELECT id, business_id, branch_id, product_id, quantity, status, total_cost, note, created_by, created_at, updated_at, committed_at
		FROM production_batches WHERE id = $1
		FOR UPDATE`
	b, err := scanProductionBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production batch for update: %w", err)
	}
	return b, nil
}

// ListLines lista las líneas congeladas de un lote, en orden de ingrediente.
func (r *ProductionBatchRepo) ListLines(batchID string) ([]*entity.ProductionBatchLine, error) {
	query := `
		SELECT id, batch_id, ingredient_id, quantity, unit_cost
		FROM production_batch_lines WHERE batch_id = $1 ORDER BY ingredient_id ASC`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list production batch lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatchLine
	for rows.Next() {
		var l entity.ProductionBatchLine
		if err := rows.Scan(&l.ID, &l.BatchID, &l.IngredientID, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan production batch line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del lote; committedAt solo se fija al confirmar.
func (r *ProductionBatchRepo) UpdateStatus(batchID, status string, committedAt *time.Time) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE production_batches
		SET status = $2, committed_at = COALESCE($3, committed_at), updated_at = now()
		WHERE id = $1`,
		batchID, status, committedAt,
	)
	if err != nil {
		return fmt.Errorf("update production batch status: %w", err)
	}
	return nil
}

// ListByBusiness lista lotes del negocio con filtros y paginación, más reciente primero.
func (r *ProductionBatchRepo) ListByBusiness(businessID string, filter repository.ProductionBatchFilter, limit, offset int) ([]*entity.ProductionBatch, error) {
	query := `
		SELECT id, business_id, branch_id, product_id, quantity, status, total_cost, note, created_by, created_at, updated_at, committed_at
		FROM production_batches WHERE business_id = $1`
	args := []any{businessID}
	pos := 2
	if filter.BranchID != "" {
		query += fmt.Sprintf(" AND branch_id = $%d", pos)
		args = append(args, filter.BranchID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionBatch
	for rows.Next() {
		b, err := scanProductionBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan production batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanProductionBatch(row pgx.Row) (*entity.ProductionBatch, error) {
	var b entity.ProductionBatch
	var note, createdBy *string
	err := row.Scan(
		&b.ID, &b.BusinessID, &b.BranchID, &b.ProductID, &b.Quantity, &b.Status,
		&b.TotalCost, &note, &createdBy, &b.CreatedAt, &b.UpdatedAt, &b.CommittedAt,
	)
	if err != nil {
		return nil, err
	}
	if note != nil {
		b.Note = *note
	}
	if createdBy != nil {
		b.CreatedBy = *createdBy
	}
	return &b, nil
}
