package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

var _ repository.RecipeLineRepository = (*RecipeLineRepo)(nil)

// RecipeLineRepo implementación del puerto RecipeLineRepository sobre PostgreSQL (usable con pool o tx).
type RecipeLineRepo struct {
	q Querier
}

// NewRecipeLineRepository construye el adaptador de persistencia para líneas de receta. Pasar pool o tx (Querier).
func NewRecipeLineRepository(q Querier) *RecipeLineRepo {
	return &RecipeLineRepo{q: q}
}

// Create persiste una línea de receta. (producto, ingrediente) único: 23505 -> ErrDuplicate.
func (r *RecipeLineRepo) Create(line *entity.RecipeLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	query := `
		INSERT INTO recipe_lines (id, product_id, ingredient_id, usage_per_cup, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductID, line.IngredientID, line.UsagePerCup, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe line: %w", err)
	}
	return nil
}

// ListByProduct lista las líneas de la receta de un producto.
func (r *RecipeLineRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	query := `
		SELECT id, product_id, ingredient_id, usage_per_cup, created_at, updated_at
		FROM recipe_lines WHERE product_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list recipe lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.RecipeLine
	for rows.Next() {
		var l entity.RecipeLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.IngredientID, &l.UsagePerCup,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteByProduct borra todas las líneas de la receta (reemplazo atómico).
func (r *RecipeLineRepo) DeleteByProduct(productID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipe_lines WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete recipe lines: %w", err)
	}
	return nil
}

// ListProductIDsByIngredient devuelve los productos cuya receta usa el ingrediente.
func (r *RecipeLineRepo) ListProductIDsByIngredient(ingredientID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT product_id FROM recipe_lines WHERE ingredient_id = $1`, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list products by ingredient: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByIngredient cuenta cuántas líneas de receta referencian el ingrediente.
func (r *RecipeLineRepo) CountByIngredient(ingredientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM recipe_lines WHERE ingredient_id = $1`, ingredientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recipe lines: %w", err)
	}
	return count, nil
}
