package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.SalesTargetRepository = (*SalesTargetRepo)(nil)

// SalesTargetRepo implementación de SalesTargetRepository sobre PostgreSQL (usable con pool o tx).
type SalesTargetRepo struct {
	q Querier
}

// NewSalesTargetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesTargetRepository(q Querier) *SalesTargetRepo {
	return &SalesTargetRepo{q: q}
}

// Create persiste una meta diaria. (sucursal, fecha) único: 23505 -> ErrDuplicate.
func (r *SalesTargetRepo) Create(target *entity.DailySalesTarget) error {
	query := `
		INSERT INTO daily_sales_targets (id, business_id, branch_id, date, target_amount, target_cups, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		target.ID, target.BusinessID, target.BranchID, target.Date,
		target.TargetAmount, target.TargetCups, nullIfEmpty(target.Note),
		target.CreatedAt, target.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales target: %w", err)
	}
	return nil
}

// GetByID obtiene una meta por ID.
func (r *SalesTargetRepo) GetByID(id string) (*entity.DailySalesTarget, error) {
	query := `
		SELECT id, business_id, branch_id, date, target_amount, target_cups, note, created_at, updated_at
		FROM daily_sales_targets WHERE id = $1`
	t, err := scanSalesTarget(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales target: %w", err)
	}
	return t, nil
}

// GetByBranchAndDate obtiene la meta de una sucursal para una fecha.
func (r *SalesTargetRepo) GetByBranchAndDate(branchID string, date time.Time) (*entity.DailySalesTarget, error) {
	query := `
		SELECT id, business_id, branch_id, date, target_amount, target_cups, note, created_at, updated_at
		FROM daily_sales_targets WHERE branch_id = $1 AND date = $2`
	t, err := scanSalesTarget(r.q.QueryRow(context.Background(), query, branchID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales target by date: %w", err)
	}
	return t, nil
}

// Update actualiza una meta existente (montos y nota; la fecha no cambia).
func (r *SalesTargetRepo) Update(target *entity.DailySalesTarget) error {
	query := `
		UPDATE daily_sales_targets SET target_amount = $2, target_cups = $3, note = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		target.ID, target.TargetAmount, target.TargetCups, nullIfEmpty(target.Note), target.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales target: %w", err)
	}
	return nil
}

// ListByBranchRange lista las metas de una sucursal en [from, to], por fecha.
func (r *SalesTargetRepo) ListByBranchRange(branchID string, from, to time.Time) ([]*entity.DailySalesTarget, error) {
	query := `
		SELECT id, business_id, branch_id, date, target_amount, target_cups, note, created_at, updated_at
		FROM daily_sales_targets
		WHERE branch_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales targets: %w", err)
	}
	defer rows.Close()
	return scanSalesTargets(rows)
}

// ListByBusinessRange lista las metas de todas las sucursales del negocio en [from, to].
func (r *SalesTargetRepo) ListByBusinessRange(businessID string, from, to time.Time) ([]*entity.DailySalesTarget, error) {
	query := `
		SELECT id, business_id, branch_id, date, target_amount, target_cups, note, created_at, updated_at
		FROM daily_sales_targets
		WHERE business_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, branch_id ASC`
	rows, err := r.q.Query(context.Background(), query, businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales targets by business: %w", err)
	}
	defer rows.Close()
	return scanSalesTargets(rows)
}

// Delete elimina una meta por ID.
func (r *SalesTargetRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM daily_sales_targets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sales target: %w", err)
	}
	return nil
}

func scanSalesTarget(row pgx.Row) (*entity.DailySalesTarget, error) {
	var t entity.DailySalesTarget
	var note *string
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.BranchID, &t.Date, &t.TargetAmount,
		&t.TargetCups, &note, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note != nil {
		t.Note = *note
	}
	return &t, nil
}

func scanSalesTargets(rows pgx.Rows) ([]*entity.DailySalesTarget, error) {
	var list []*entity.DailySalesTarget
	for rows.Next() {
		t, err := scanSalesTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales target: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
