package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de persistencia para ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = `id, business_id, name, category, unit, base_unit_cost, base_unit_qty, avg_cost, reorder_point, status, created_at, updated_at`

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := row.Scan(
		&i.ID, &i.BusinessID, &i.Name, &i.Category, &i.Unit,
		&i.BaseUnitCost, &i.BaseUnitQty, &i.AvgCost, &i.ReorderPoint,
		&i.Status, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persiste un nuevo ingrediente. Nombre único por negocio: 23505 -> ErrDuplicate.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (` + ingredientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.BusinessID, ingredient.Name, ingredient.Category,
		ingredient.Unit, ingredient.BaseUnitCost, ingredient.BaseUnitQty,
		ingredient.AvgCost, ingredient.ReorderPoint, ingredient.Status,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

// GetByBusinessAndName obtiene un ingrediente por negocio y nombre exacto.
func (r *IngredientRepo) GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE business_id = $1 AND name = $2`
	i, err := scanIngredient(r.q.QueryRow(context.Background(), query, businessID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient by name: %w", err)
	}
	return i, nil
}

// Update actualiza un ingrediente existente. AvgCost no se toca aquí (lo
// mantiene el flujo de recepción vía UpdateAvgCost).
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients SET name = $2, category = $3, unit = $4, base_unit_cost = $5,
			base_unit_qty = $6, reorder_point = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Category, ingredient.Unit,
		ingredient.BaseUnitCost, ingredient.BaseUnitQty, ingredient.ReorderPoint,
		ingredient.Status, ingredient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdateAvgCost actualiza solo el costo promedio ponderado (motor de bodega).
func (r *IngredientRepo) UpdateAvgCost(ingredientID string, avgCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ingredients SET avg_cost = $2, updated_at = now() WHERE id = $1`,
		ingredientID, avgCost,
	)
	if err != nil {
		return fmt.Errorf("update ingredient avg cost: %w", err)
	}
	return nil
}

// ListByBusiness lista ingredientes por negocio, opcionalmente filtrados por categoría.
func (r *IngredientRepo) ListByBusiness(businessID, category string, limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE business_id = $1`
	args := []any{businessID}
	pos := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// ListByIDs devuelve los ingredientes cuyos IDs están en la lista.
func (r *IngredientRepo) ListByIDs(ids []string) ([]*entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list ingredients by ids: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Delete elimina un ingrediente por ID. Las FKs de recetas, lotes y
// movimientos lo bloquean con ErrIngredientInUse.
func (r *IngredientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrIngredientInUse
		}
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
