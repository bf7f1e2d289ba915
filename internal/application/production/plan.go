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

// ShortageError detalla los faltantes por ingrediente cuando el stock
// disponible no alcanza para planificar el lote completo. Envuelve
// domain.ErrInsufficientStock para el mapeo HTTP.
type ShortageError struct {
	Shortages []dto.ShortageDetail
}

func (e *ShortageError) Error() string { return domain.ErrInsufficientStock.Error() }

func (e *ShortageError) Unwrap() error { return domain.ErrInsufficientStock }

// Plan crea un lote de producción en estado PLANNED: expande la receta por la
// cantidad de tazas, bloquea las filas de stock en orden de ingrediente,
// verifica que todo el lote quepa en el stock disponible y reserva. Las
// líneas congelan cantidad y costo unitario de catálogo al momento de
// planificar.
//
// Si algún ingrediente no alcanza devuelve *ShortageError con el detalle por
// ingrediente y no reserva nada.
func (uc *UseCase) Plan(ctx context.Context, businessID, userID string, in dto.PlanProductionRequest) (*dto.ProductionBatchResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	cups := decimal.NewFromInt(in.Quantity)
	batch := &entity.ProductionBatch{
		ID:         uuid.New().String(),
		BusinessID: businessID,
		BranchID:   in.BranchID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Status:     entity.ProductionStatusPlanned,
		Note:       in.Note,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var (
		batchLines  []*entity.ProductionBatchLine
		ingredients map[string]*entity.Ingredient
	)
	err = uc.txRunner.RunProduction(ctx, func(
		prodRepo repository.ProductionBatchRepository,
		stockRepo repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		_ repository.ProductRepository,
		recipeRepo repository.RecipeLineRepository,
		ingredientRepo repository.IngredientRepository,
	) error {
		recipe, err := recipeRepo.ListByProduct(in.ProductID)
		if err != nil {
			return err
		}
		if len(recipe) == 0 {
			// Sin receta no hay nada que reservar.
			return domain.ErrConflict
		}
		// Orden estable por ingrediente: los bloqueos FOR UPDATE de dos
		// planificaciones concurrentes se adquieren en la misma secuencia.
		sort.Slice(recipe, func(i, j int) bool {
			return recipe[i].IngredientID < recipe[j].IngredientID
		})

		ids := make([]string, 0, len(recipe))
		for _, line := range recipe {
			ids = append(ids, line.IngredientID)
		}
		list, err := ingredientRepo.ListByIDs(ids)
		if err != nil {
			return err
		}
		ingredients = make(map[string]*entity.Ingredient, len(list))
		for _, ing := range list {
			ingredients[ing.ID] = ing
		}

		// Primera pasada: bloquear todas las filas y detectar faltantes.
		type allocation struct {
			stock  *entity.StockLevel
			needed decimal.Decimal
		}
		allocs := make([]allocation, 0, len(recipe))
		var shortages []dto.ShortageDetail
		for _, line := range recipe {
			ing := ingredients[line.IngredientID]
			if ing == nil {
				return domain.ErrNotFound
			}
			needed := line.UsagePerCup.Mul(cups)
			stock, err := stockRepo.GetForUpdate(in.BranchID, line.IngredientID)
			if err != nil {
				return err
			}
			if stock.Available().LessThan(needed) {
				shortages = append(shortages, dto.ShortageDetail{
					IngredientID:   ing.ID,
					IngredientName: ing.Name,
					Unit:           ing.Unit,
					Needed:         needed,
					Available:      stock.Available(),
					Missing:        needed.Sub(stock.Available()),
				})
				continue
			}
			allocs = append(allocs, allocation{stock: stock, needed: needed})
		}
		if len(shortages) > 0 {
			return &ShortageError{Shortages: shortages}
		}

		// Segunda pasada: reservar y congelar líneas.
		total := decimal.Zero
		batchLines = make([]*entity.ProductionBatchLine, 0, len(recipe))
		for i, line := range recipe {
			alloc := allocs[i]
			alloc.stock.Reserved = alloc.stock.Reserved.Add(alloc.needed)
			alloc.stock.UpdatedAt = now
			if err := stockRepo.Upsert(alloc.stock); err != nil {
				return err
			}
			unitCost := ingredients[line.IngredientID].UnitCost()
			batchLines = append(batchLines, &entity.ProductionBatchLine{
				ID:           uuid.New().String(),
				BatchID:      batch.ID,
				IngredientID: line.IngredientID,
				Quantity:     alloc.needed,
				UnitCost:     unitCost,
			})
			total = total.Add(alloc.needed.Mul(unitCost))
		}
		batch.TotalCost = total

		return prodRepo.Create(batch, batchLines)
	})
	if err != nil {
		return nil, err
	}

	resp := toBatchResponse(batch)
	resp.ProductName = product.Name
	resp.Lines = make([]dto.ProductionLineResponse, 0, len(batchLines))
	for _, l := range batchLines {
		item := dto.ProductionLineResponse{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			UnitCost:     l.UnitCost,
			LineTotal:    l.LineTotal(),
		}
		if ing := ingredients[l.IngredientID]; ing != nil {
			item.IngredientName = ing.Name
			item.Unit = ing.Unit
		}
		resp.Lines = append(resp.Lines, item)
	}
	return resp, nil
}
