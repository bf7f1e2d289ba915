package production

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// Commit confirma un lote PLANNED: por cada línea congelada libera la reserva,
// descuenta el stock y asienta el movimiento OUT con el ID del lote como
// transacción. Devuelve ErrBatchNotEditable si el lote ya fue confirmado o
// cancelado.
func (uc *UseCase) Commit(ctx context.Context, businessID, userID, batchID string) (*dto.ProductionBatchResponse, error) {
	now := time.Now()
	var (
		batch *entity.ProductionBatch
		lines []*entity.ProductionBatchLine
	)
	err := uc.txRunner.RunProduction(ctx, func(
		prodRepo repository.ProductionBatchRepository,
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.RecipeLineRepository,
		_ repository.IngredientRepository,
	) error {
		var err error
		batch, err = prodRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil || batch.BusinessID != businessID {
			return domain.ErrNotFound
		}
		if batch.Status != entity.ProductionStatusPlanned {
			return domain.ErrBatchNotEditable
		}
		lines, err = prodRepo.ListLines(batchID)
		if err != nil {
			return err
		}
		sortLines(lines)

		for _, line := range lines {
			stock, err := stockRepo.GetForUpdate(batch.BranchID, line.IngredientID)
			if err != nil {
				return err
			}
			stock.Reserved = stock.Reserved.Sub(line.Quantity)
			stock.Quantity = stock.Quantity.Sub(line.Quantity)
			if stock.Quantity.IsNegative() || stock.Reserved.IsNegative() {
				// La reserva del plan garantiza que esto no pase; si pasa,
				// el nivel fue manipulado por fuera y abortamos.
				return domain.ErrInsufficientStock
			}
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: batch.ID,
				BranchID:      batch.BranchID,
				IngredientID:  line.IngredientID,
				Type:          entity.MovementTypeOUT,
				Quantity:      line.Quantity.Neg(),
				UnitCost:      line.UnitCost,
				TotalCost:     line.Quantity.Neg().Mul(line.UnitCost),
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		return prodRepo.UpdateStatus(batchID, entity.ProductionStatusCommitted, &now)
	})
	if err != nil {
		return nil, err
	}

	uc.journey.MarkStepDone(businessID, entity.JourneyStepPrimeraProduccion)

	batch.Status = entity.ProductionStatusCommitted
	batch.CommittedAt = &now
	resp := toBatchResponse(batch)
	resp.Lines, err = uc.toLineResponses(lines)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Cancel cancela un lote PLANNED liberando la reserva de cada línea. No toca
// Quantity ni escribe movimientos: planificar y cancelar deja el stock como
// estaba. Devuelve ErrBatchNotEditable si el lote no está en PLANNED.
func (uc *UseCase) Cancel(ctx context.Context, businessID, batchID string) (*dto.ProductionBatchResponse, error) {
	now := time.Now()
	var batch *entity.ProductionBatch
	err := uc.txRunner.RunProduction(ctx, func(
		prodRepo repository.ProductionBatchRepository,
		stockRepo repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		_ repository.RecipeLineRepository,
		_ repository.IngredientRepository,
	) error {
		var err error
		batch, err = prodRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if batch == nil || batch.BusinessID != businessID {
			return domain.ErrNotFound
		}
		if batch.Status != entity.ProductionStatusPlanned {
			return domain.ErrBatchNotEditable
		}
		lines, err := prodRepo.ListLines(batchID)
		if err != nil {
			return err
		}
		sortLines(lines)

		for _, line := range lines {
			stock, err := stockRepo.GetForUpdate(batch.BranchID, line.IngredientID)
			if err != nil {
				return err
			}
			stock.Reserved = stock.Reserved.Sub(line.Quantity)
			if stock.Reserved.IsNegative() {
				stock.Reserved = decimal.Zero
			}
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
		}
		return prodRepo.UpdateStatus(batchID, entity.ProductionStatusCancelled, nil)
	})
	if err != nil {
		return nil, err
	}

	batch.Status = entity.ProductionStatusCancelled
	return toBatchResponse(batch), nil
}

// sortLines ordena por ingrediente para adquirir los bloqueos de stock en la
// misma secuencia que la planificación.
func sortLines(lines []*entity.ProductionBatchLine) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].IngredientID < lines[j].IngredientID
	})
}
