package usecase

import (
	"context"

	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// RecipeTxRunner ejecuta el reemplazo atómico de receta dentro de una
// transacción: borrar líneas, insertar las nuevas y materializar el COGS del
// producto como una sola unidad de trabajo.
type RecipeTxRunner interface {
	RunRecipe(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		recipeRepo repository.RecipeLineRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error
}

// Recoster encola el recosteo de los productos que usan un ingrediente cuyo
// costo de presentación cambió. La implementación corre en segundo plano; el
// caso de uso no espera el resultado.
type Recoster interface {
	EnqueueIngredient(ingredientID string)
}

// JourneyMarker marca pasos del recorrido de puesta en marcha cuando ocurre
// la acción correspondiente (primera sucursal, primer ingrediente, ...).
// Las implementaciones son best-effort: registran el error y nunca hacen
// fallar la operación principal.
type JourneyMarker interface {
	MarkStepDone(businessID, stepKey string)
}
