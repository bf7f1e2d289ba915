package repository

import (
	"time"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// StockMovementFilter filtra el libro de movimientos. Campos en cero se
// ignoran; From/To acotan por fecha del movimiento.
type StockMovementFilter struct {
	BranchID     string
	IngredientID string
	Type         string
	From         *time.Time
	To           *time.Time
}

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos de inventario (DIP). Los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByBusiness(businessID string, filter StockMovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	// ListByTransaction agrupa los movimientos de una misma operación
	// (ej: los OUT de un lote de producción confirmado).
	ListByTransaction(transactionID string) ([]*entity.StockMovement, error)
}
