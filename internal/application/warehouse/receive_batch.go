package warehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/costing"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// ReceiveBatch registra la recepción de un lote en la bodega de una sucursal.
// En una sola transacción: inserta el lote, suma la cantidad al stock (fila
// bloqueada con SELECT FOR UPDATE), recalcula el costo promedio ponderado del
// ingrediente y asienta el movimiento IN.
func (uc *UseCase) ReceiveBatch(ctx context.Context, businessID, userID string, in dto.ReceiveBatchRequest) (*dto.WarehouseBatchResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || in.TotalCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.findOwnedBranch(businessID, in.BranchID); err != nil {
		return nil, err
	}
	if _, err := uc.findOwnedIngredient(businessID, in.IngredientID); err != nil {
		return nil, err
	}

	now := time.Now()
	receivedAt := now
	if in.ReceivedAt != nil {
		receivedAt = *in.ReceivedAt
	}
	unitCost := in.TotalCost.Div(in.Quantity)

	batch := &entity.WarehouseBatch{
		ID:           uuid.New().String(),
		BusinessID:   businessID,
		BranchID:     in.BranchID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		TotalCost:    in.TotalCost,
		UnitCost:     unitCost,
		ReceivedAt:   receivedAt,
		ExpiresAt:    in.ExpiresAt,
		Note:         in.Note,
		CreatedBy:    userID,
		CreatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		batchRepo repository.WarehouseBatchRepository,
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		if err := batchRepo.Create(batch); err != nil {
			return err
		}

		// Bloquea la fila de stock para la secuencia leer-promediar-sumar.
		stock, err := stockRepo.GetForUpdate(in.BranchID, in.IngredientID)
		if err != nil {
			return err
		}
		ingredient, err := ingredientRepo.GetByID(in.IngredientID)
		if err != nil {
			return err
		}
		if ingredient == nil {
			return domain.ErrNotFound
		}

		newAvg := costing.WeightedAverage(stock.Quantity, ingredient.AvgCost, in.Quantity, unitCost)
		if err := ingredientRepo.UpdateAvgCost(in.IngredientID, newAvg); err != nil {
			return err
		}

		stock.Quantity = stock.Quantity.Add(in.Quantity)
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: batch.ID,
			BranchID:      in.BranchID,
			IngredientID:  in.IngredientID,
			Type:          entity.MovementTypeIN,
			Quantity:      in.Quantity,
			UnitCost:      unitCost,
			TotalCost:     in.TotalCost,
			Reason:        in.Note,
			Date:          receivedAt,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.journey.MarkStepDone(businessID, entity.JourneyStepRecibirLote)
	return toBatchResponse(batch), nil
}
