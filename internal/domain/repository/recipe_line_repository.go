package repository

import "github.com/jhoicas/Baristo-api/internal/domain/entity"

// RecipeLineRepository define el puerto de persistencia para las líneas de
// receta (DIP). El reemplazo de receta corre dentro de una transacción:
// DeleteByProduct + Create por línea + UpdateCOGS del producto.
type RecipeLineRepository interface {
	Create(line *entity.RecipeLine) error
	ListByProduct(productID string) ([]*entity.RecipeLine, error)
	DeleteByProduct(productID string) error
	// ListProductIDsByIngredient devuelve los productos cuya receta usa el
	// ingrediente; alimenta el recosteo asíncrono.
	ListProductIDsByIngredient(ingredientID string) ([]string, error)
	// CountByIngredient cuenta referencias vivas; bloquea el borrado del
	// ingrediente mientras sea > 0.
	CountByIngredient(ingredientID string) (int, error)
}
