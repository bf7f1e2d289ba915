package warehouse

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Baristo-api/internal/application/dto"
)

// idealStockFactor lleva el stock sugerido por encima del punto de reorden
// para no volver a caer en alerta con el primer consumo.
var idealStockFactor = decimal.NewFromFloat(1.5)

// Alerts devuelve los ingredientes bajo su punto de reorden, con la cantidad
// sugerida de pedido (stock ideal = reorden × 1.5) y su costo estimado al
// promedio vigente. Con branchID vacío cubre todas las sucursales.
func (uc *UseCase) Alerts(ctx context.Context, businessID, branchID string) (*dto.StockAlertListResponse, error) {
	if branchID != "" {
		if _, err := uc.findOwnedBranch(businessID, branchID); err != nil {
			return nil, err
		}
	}
	raw, err := uc.stockRepo.ListBelowReorderPoint(ctx, businessID, branchID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockAlertResponse, 0, len(raw))
	for _, item := range raw {
		available := item.Quantity.Sub(item.Reserved)
		ideal := item.ReorderPoint.Mul(idealStockFactor)
		suggested := ideal.Sub(available)
		if suggested.LessThanOrEqual(decimal.Zero) {
			suggested = decimal.Zero
		}
		items = append(items, dto.StockAlertResponse{
			IngredientID:      item.IngredientID,
			IngredientName:    item.IngredientName,
			Unit:              item.Unit,
			BranchID:          item.BranchID,
			BranchName:        item.BranchName,
			Available:         available,
			ReorderPoint:      item.ReorderPoint,
			Deficit:           item.ReorderPoint.Sub(available),
			SuggestedOrderQty: suggested,
			EstimatedCost:     suggested.Mul(item.AvgCost),
		})
	}
	return &dto.StockAlertListResponse{Items: items}, nil
}
