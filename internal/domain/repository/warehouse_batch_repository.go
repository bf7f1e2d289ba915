package repository

import "github.com/jhoicas/Baristo-api/internal/domain/entity"

// WarehouseBatchFilter filtra el listado de lotes recibidos. Los campos en
// cero se ignoran.
type WarehouseBatchFilter struct {
	BranchID     string
	IngredientID string
}

// WarehouseBatchRepository define el puerto de persistencia para los lotes
// recibidos en bodega (DIP). Los lotes son inmutables una vez recibidos.
type WarehouseBatchRepository interface {
	Create(batch *entity.WarehouseBatch) error
	GetByID(id string) (*entity.WarehouseBatch, error)
	ListByBusiness(businessID string, filter WarehouseBatchFilter, limit, offset int) ([]*entity.WarehouseBatch, error)
}
