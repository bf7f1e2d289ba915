package warehouse

import (
	"context"

	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre el lote recibido,
// el movimiento, el nivel de stock y el costo promedio del ingrediente.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.WarehouseBatchRepository,
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		ingredientRepo repository.IngredientRepository,
	) error) error
}

// JourneyMarker marca pasos del recorrido de puesta en marcha (best-effort).
type JourneyMarker interface {
	MarkStepDone(businessID, stepKey string)
}
