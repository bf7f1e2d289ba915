package production

import (
	"context"

	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El ciclo planificar/confirmar/cancelar exige
// atomicidad entre el lote, las reservas de stock y los movimientos OUT.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		prodRepo repository.ProductionBatchRepository,
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		recipeRepo repository.RecipeLineRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error
}

// JourneyMarker marca pasos del recorrido de puesta en marcha (best-effort).
type JourneyMarker interface {
	MarkStepDone(businessID, stepKey string)
}
