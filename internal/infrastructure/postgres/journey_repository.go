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

var _ repository.JourneyRepository = (*JourneyRepo)(nil)

// JourneyRepo implementación de JourneyRepository sobre PostgreSQL (usable con pool o tx).
type JourneyRepo struct {
	q Querier
}

// NewJourneyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJourneyRepository(q Querier) *JourneyRepo {
	return &JourneyRepo{q: q}
}

// SeedSteps inserta los pasos del recorrido que falten para el negocio
// (idempotente vía ON CONFLICT DO NOTHING).
func (r *JourneyRepo) SeedSteps(businessID string) error {
	query := `
		INSERT INTO journey_steps (id, business_id, step_key, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, false, NULL, now(), now())
		ON CONFLICT (business_id, step_key) DO NOTHING`
	for _, key := range entity.JourneySteps() {
		if _, err := r.q.Exec(context.Background(), query, uuid.New().String(), businessID, key); err != nil {
			return fmt.Errorf("seed journey step %s: %w", key, err)
		}
	}
	return nil
}

// ListByBusiness lista los pasos del negocio en el orden de presentación.
func (r *JourneyRepo) ListByBusiness(businessID string) ([]*entity.JourneyStep, error) {
	query := `
		SELECT id, business_id, step_key, completed, completed_at, created_at, updated_at
		FROM journey_steps WHERE business_id = $1`
	rows, err := r.q.Query(context.Background(), query, businessID)
	if err != nil {
		return nil, fmt.Errorf("list journey steps: %w", err)
	}
	defer rows.Close()
	byKey := make(map[string]*entity.JourneyStep)
	for rows.Next() {
		var s entity.JourneyStep
		if err := rows.Scan(&s.ID, &s.BusinessID, &s.StepKey, &s.Completed,
			&s.CompletedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan journey step: %w", err)
		}
		byKey[s.StepKey] = &s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Orden canónico de presentación, no el de inserción.
	var list []*entity.JourneyStep
	for _, key := range entity.JourneySteps() {
		if s, ok := byKey[key]; ok {
			list = append(list, s)
		}
	}
	return list, nil
}

// GetByBusinessAndKey obtiene un paso puntual.
func (r *JourneyRepo) GetByBusinessAndKey(businessID, stepKey string) (*entity.JourneyStep, error) {
	query := `
		SELECT id, business_id, step_key, completed, completed_at, created_at, updated_at
		FROM journey_steps WHERE business_id = $1 AND step_key = $2`
	var s entity.JourneyStep
	err := r.q.QueryRow(context.Background(), query, businessID, stepKey).Scan(
		&s.ID, &s.BusinessID, &s.StepKey, &s.Completed, &s.CompletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journey step: %w", err)
	}
	return &s, nil
}

// SetCompleted marca o desmarca un paso (idempotente). Fija completed_at al
// marcar y lo limpia al desmarcar.
func (r *JourneyRepo) SetCompleted(businessID, stepKey string, completed bool) error {
	query := `
		UPDATE journey_steps
		SET completed = $3,
		    completed_at = CASE WHEN $3 THEN COALESCE(completed_at, now()) ELSE NULL END,
		    updated_at = now()
		WHERE business_id = $1 AND step_key = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, stepKey, completed)
	if err != nil {
		return fmt.Errorf("set journey step completed: %w", err)
	}
	return nil
}
