package warehouse

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// RegisterMovement registra un ajuste manual o un traslado entre sucursales,
// de forma transaccional y con bloqueo de fila (SELECT FOR UPDATE). Las
// salidas por producción no pasan por aquí: las genera la confirmación del
// lote de producción.
func (uc *UseCase) RegisterMovement(ctx context.Context, businessID, userID string, in dto.RegisterMovementRequest) ([]dto.MovementResponse, error) {
	switch in.Type {
	case entity.MovementTypeADJUSTMENT:
		if in.BranchID == "" || in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeTRANSFER:
		if in.FromBranchID == "" || in.ToBranchID == "" {
			return nil, domain.ErrInvalidInput
		}
		if in.FromBranchID == in.ToBranchID || !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	ingredient, err := uc.findOwnedIngredient(businessID, in.IngredientID)
	if err != nil {
		return nil, err
	}
	if in.Type == entity.MovementTypeTRANSFER {
		if _, err := uc.findOwnedBranch(businessID, in.FromBranchID); err != nil {
			return nil, err
		}
		if _, err := uc.findOwnedBranch(businessID, in.ToBranchID); err != nil {
			return nil, err
		}
	} else {
		if _, err := uc.findOwnedBranch(businessID, in.BranchID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	txID := uuid.New().String()
	var created []*entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		_ repository.WarehouseBatchRepository,
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		// El costo de referencia del asiento es el promedio vigente.
		fresh, err := ingredientRepo.GetByID(ingredient.ID)
		if err != nil {
			return err
		}
		if fresh == nil {
			return domain.ErrNotFound
		}
		unitCost := fresh.AvgCost

		switch in.Type {
		case entity.MovementTypeADJUSTMENT:
			created, err = uc.doAdjustment(stockRepo, movRepo, in, unitCost, now, txID, userID)
		case entity.MovementTypeTRANSFER:
			created, err = uc.doTransfer(stockRepo, movRepo, in, unitCost, now, txID, userID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(created))
	for _, m := range created {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

// doAdjustment aplica un ajuste con signo (conteo físico, merma). La cantidad
// resultante no puede quedar negativa ni por debajo de lo reservado para
// producción.
func (uc *UseCase) doAdjustment(
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	in dto.RegisterMovementRequest,
	unitCost decimal.Decimal,
	now time.Time, txID, userID string,
) ([]*entity.StockMovement, error) {
	stock, err := stockRepo.GetForUpdate(in.BranchID, in.IngredientID)
	if err != nil {
		return nil, err
	}
	newQty := stock.Quantity.Add(in.Quantity)
	if newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}
	if newQty.LessThan(stock.Reserved) {
		return nil, domain.ErrReservedStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		BranchID:      in.BranchID,
		IngredientID:  in.IngredientID,
		Type:          entity.MovementTypeADJUSTMENT,
		Quantity:      in.Quantity,
		UnitCost:      unitCost,
		TotalCost:     in.Quantity.Mul(unitCost),
		Reason:        in.Reason,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return []*entity.StockMovement{mov}, nil
}

// doTransfer mueve stock entre las bodegas de dos sucursales: resta en origen
// y suma en destino, con dos asientos bajo la misma transacción. El stock
// reservado en el origen no se puede trasladar.
func (uc *UseCase) doTransfer(
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	in dto.RegisterMovementRequest,
	unitCost decimal.Decimal,
	now time.Time, txID, userID string,
) ([]*entity.StockMovement, error) {
	// Bloquea ambas filas en orden de sucursal para evitar interbloqueos
	// entre traslados cruzados concurrentes.
	first, second := in.FromBranchID, in.ToBranchID
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entity.StockLevel, 2)
	for _, branchID := range []string{first, second} {
		stock, err := stockRepo.GetForUpdate(branchID, in.IngredientID)
		if err != nil {
			return nil, err
		}
		locked[branchID] = stock
	}
	origin := locked[in.FromBranchID]
	dest := locked[in.ToBranchID]

	if origin.Quantity.LessThan(in.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	if origin.Available().LessThan(in.Quantity) {
		return nil, domain.ErrReservedStock
	}

	origin.Quantity = origin.Quantity.Sub(in.Quantity)
	dest.Quantity = dest.Quantity.Add(in.Quantity)
	origin.UpdatedAt = now
	dest.UpdatedAt = now
	if err := stockRepo.Upsert(origin); err != nil {
		return nil, err
	}
	if err := stockRepo.Upsert(dest); err != nil {
		return nil, err
	}

	outMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		BranchID:      in.FromBranchID,
		IngredientID:  in.IngredientID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      in.Quantity.Neg(),
		UnitCost:      unitCost,
		TotalCost:     in.Quantity.Neg().Mul(unitCost),
		Reason:        in.Reason,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(outMov); err != nil {
		return nil, err
	}
	inMov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		BranchID:      in.ToBranchID,
		IngredientID:  in.IngredientID,
		Type:          entity.MovementTypeTRANSFER,
		Quantity:      in.Quantity,
		UnitCost:      unitCost,
		TotalCost:     in.Quantity.Mul(unitCost),
		Reason:        in.Reason,
		Date:          now,
		CreatedAt:     now,
		CreatedBy:     userID,
	}
	if err := movRepo.Create(inMov); err != nil {
		return nil, err
	}
	return []*entity.StockMovement{outMov, inMov}, nil
}
