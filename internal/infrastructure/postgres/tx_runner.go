package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Baristo-api/internal/application/production"
	"github.com/jhoicas/Baristo-api/internal/application/usecase"
	"github.com/jhoicas/Baristo-api/internal/application/warehouse"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ warehouse.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ usecase.RecipeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos de bodega (recepción de lotes,
// ajustes y traslados) y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.WarehouseBatchRepository,
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batchRepo := NewWarehouseBatchRepository(tx)
	stockRepo := NewStockLevelRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	ingredientRepo := NewIngredientRepository(tx)

	if err := fn(batchRepo, stockRepo, movRepo, ingredientRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction inicia una transacción con los repos del ciclo de producción
// (planificar, confirmar, cancelar).
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	prodRepo repository.ProductionBatchRepository,
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeLineRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	prodRepo := NewProductionBatchRepository(tx)
	stockRepo := NewStockLevelRepository(tx)
	movRepo := NewStockMovementRepository(tx)
	productRepo := NewProductRepository(tx)
	recipeRepo := NewRecipeLineRepository(tx)
	ingredientRepo := NewIngredientRepository(tx)

	if err := fn(prodRepo, stockRepo, movRepo, productRepo, recipeRepo, ingredientRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRecipe inicia una transacción para el reemplazo atómico de receta
// (borrar líneas + insertar nuevas + materializar COGS del producto).
func (r *TxRunner) RunRecipe(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	recipeRepo repository.RecipeLineRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	recipeRepo := NewRecipeLineRepository(tx)
	ingredientRepo := NewIngredientRepository(tx)

	if err := fn(productRepo, recipeRepo, ingredientRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
