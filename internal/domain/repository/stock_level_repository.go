package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// StockAlertItem resultado crudo del repositorio para un ingrediente bajo
// su punto de reorden en una sucursal.
type StockAlertItem struct {
	IngredientID   string
	IngredientName string
	Unit           string
	BranchID       string
	BranchName     string
	Quantity       decimal.Decimal
	Reserved       decimal.Decimal
	ReorderPoint   decimal.Decimal
	AvgCost        decimal.Decimal
}

// StockLevelRepository define el puerto para consultar/actualizar stock por
// sucursal+ingrediente (DIP). Usado dentro de transacciones para garantizar
// consistencia entre reserva, consumo y recepción.
type StockLevelRepository interface {
	// Get devuelve el nivel; si aún no hay fila devuelve un nivel en cero
	// (nunca nil) para que los flujos no distingan "sin fila" de "sin stock".
	Get(branchID, ingredientID string) (*entity.StockLevel, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(branchID, ingredientID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.StockLevel, error)
	ListByIngredient(ingredientID string) ([]*entity.StockLevel, error)

	// ListBelowReorderPoint devuelve los ingredientes cuyo stock disponible en
	// la sucursal está bajo su punto de reorden, mayor déficit primero. Con
	// branchID vacío cubre todas las sucursales del negocio.
	ListBelowReorderPoint(ctx context.Context, businessID, branchID string) ([]StockAlertItem, error)
}
