package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id string) (*entity.Ingredient, error)
	GetByBusinessAndName(businessID, name string) (*entity.Ingredient, error)
	Update(ingredient *entity.Ingredient) error
	// UpdateAvgCost actualiza solo el costo promedio ponderado (recepciones).
	UpdateAvgCost(ingredientID string, avgCost decimal.Decimal) error
	ListByBusiness(businessID, category string, limit, offset int) ([]*entity.Ingredient, error)
	// ListByIDs devuelve los ingredientes indicados; se usa para expandir
	// recetas sin N consultas.
	ListByIDs(ids []string) ([]*entity.Ingredient, error)
	Delete(id string) error
}
