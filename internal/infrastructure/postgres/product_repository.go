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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. COGSPerCup inicia en 0 (sin receta).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, business_id, sku, name, category, sale_price, cogs_per_cup, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BusinessID, product.SKU, product.Name, product.Category,
		product.SalePrice, product.COGSPerCup, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, business_id, sku, name, category, sale_price, cogs_per_cup, status, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Category, &p.SalePrice,
		&p.COGSPerCup, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByBusinessAndSKU obtiene un producto por negocio y SKU.
func (r *ProductRepo) GetByBusinessAndSKU(businessID, sku string) (*entity.Product, error) {
	query := `
		SELECT id, business_id, sku, name, category, sale_price, cogs_per_cup, status, created_at, updated_at
		FROM products WHERE business_id = $1 AND sku = $2`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, businessID, sku).Scan(
		&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Category, &p.SalePrice,
		&p.COGSPerCup, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto existente. COGSPerCup no se toca aquí (lo
// mantienen el reemplazo de receta y el recosteo vía UpdateCOGS).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, category = $4, sale_price = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, product.Category, product.SalePrice,
		product.Status, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateCOGS materializa el COGS por taza (motor de costeo).
func (r *ProductRepo) UpdateCOGS(productID string, cogsPerCup decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET cogs_per_cup = $2, updated_at = now() WHERE id = $1`,
		productID, cogsPerCup,
	)
	if err != nil {
		return fmt.Errorf("update product cogs: %w", err)
	}
	return nil
}

// ListByBusiness lista productos por negocio con filtros opcionales de categoría y estado.
func (r *ProductRepo) ListByBusiness(businessID, category, status string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, business_id, sku, name, category, sale_price, cogs_per_cup, status, created_at, updated_at
		FROM products WHERE business_id = $1`
	args := []any{businessID}
	pos := 2
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, category)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.SKU, &p.Name, &p.Category,
			&p.SalePrice, &p.COGSPerCup, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID (las líneas de receta caen por ON DELETE CASCADE).
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
