package repository

import (
	"time"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// SalesTargetRepository define el puerto de persistencia para metas diarias
// de venta (DIP). Una meta por (negocio, sucursal, fecha).
type SalesTargetRepository interface {
	Create(target *entity.DailySalesTarget) error
	GetByID(id string) (*entity.DailySalesTarget, error)
	GetByBranchAndDate(branchID string, date time.Time) (*entity.DailySalesTarget, error)
	Update(target *entity.DailySalesTarget) error
	// ListByBranchRange devuelve las metas de [from, to] ordenadas por fecha;
	// alimenta la vista calendario.
	ListByBranchRange(branchID string, from, to time.Time) ([]*entity.DailySalesTarget, error)
	ListByBusinessRange(businessID string, from, to time.Time) ([]*entity.DailySalesTarget, error)
	Delete(id string) error
}
