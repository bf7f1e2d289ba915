package repository

import (
	"time"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// ProductionBatchFilter filtra el listado de lotes de producción.
type ProductionBatchFilter struct {
	BranchID string
	Status   string
	From     *time.Time
	To       *time.Time
}

// ProductionBatchRepository define el puerto de persistencia para lotes de
// producción y sus líneas congeladas (DIP). Plan, confirmación y cancelación
// corren dentro de transacciones.
type ProductionBatchRepository interface {
	// Create inserta el lote y todas sus líneas.
	Create(batch *entity.ProductionBatch, lines []*entity.ProductionBatchLine) error
	GetByID(id string) (*entity.ProductionBatch, error)
	// GetByIDForUpdate bloquea el lote para la transición de estado
	// (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.ProductionBatch, error)
	ListLines(batchID string) ([]*entity.ProductionBatchLine, error)
	// UpdateStatus cambia el estado; committedAt solo se fija al confirmar.
	UpdateStatus(batchID, status string, committedAt *time.Time) error
	ListByBusiness(businessID string, filter ProductionBatchFilter, limit, offset int) ([]*entity.ProductionBatch, error)
}
