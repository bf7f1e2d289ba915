package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBusinessAndSKU(businessID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateCOGS materializa el COGS por taza (recálculo de receta o recosteo).
	UpdateCOGS(productID string, cogsPerCup decimal.Decimal) error
	ListByBusiness(businessID, category, status string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
