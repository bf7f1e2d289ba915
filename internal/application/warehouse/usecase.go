// Package warehouse contiene los casos de uso de bodega: recepción de lotes,
// ajustes y traslados de stock, consulta de niveles y alertas de reposición.
package warehouse

import (
	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// UseCase casos de uso de bodega. Las escrituras (recepción, ajuste,
// traslado) corren dentro de transacciones vía TxRunner; las lecturas usan
// los repositorios directos.
type UseCase struct {
	txRunner       TxRunner
	branchRepo     repository.BranchRepository
	ingredientRepo repository.IngredientRepository
	batchRepo      repository.WarehouseBatchRepository
	stockRepo      repository.StockLevelRepository
	movRepo        repository.StockMovementRepository
	journey        JourneyMarker
}

// NewUseCase construye el caso de uso de bodega.
func NewUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	ingredientRepo repository.IngredientRepository,
	batchRepo repository.WarehouseBatchRepository,
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	journey JourneyMarker,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		branchRepo:     branchRepo,
		ingredientRepo: ingredientRepo,
		batchRepo:      batchRepo,
		stockRepo:      stockRepo,
		movRepo:        movRepo,
		journey:        journey,
	}
}

// ListBatches lista los lotes recibidos del negocio con filtros opcionales.
func (uc *UseCase) ListBatches(businessID string, filter repository.WarehouseBatchFilter, limit, offset int) (*dto.WarehouseBatchListResponse, error) {
	list, err := uc.batchRepo.ListByBusiness(businessID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseBatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.WarehouseBatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListStock devuelve los niveles de stock de una sucursal con el nombre, la
// unidad y el punto de reorden de cada ingrediente.
func (uc *UseCase) ListStock(businessID, branchID string, limit, offset int) (*dto.StockListResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	levels, err := uc.stockRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(levels))
	for _, lv := range levels {
		ids = append(ids, lv.IngredientID)
	}
	ingredients, err := uc.ingredientRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	items := make([]dto.StockLevelResponse, 0, len(levels))
	for _, lv := range levels {
		item := dto.StockLevelResponse{
			BranchID:     lv.BranchID,
			IngredientID: lv.IngredientID,
			Quantity:     lv.Quantity,
			Reserved:     lv.Reserved,
			Available:    lv.Available(),
			UpdatedAt:    lv.UpdatedAt,
		}
		if ing := byID[lv.IngredientID]; ing != nil {
			item.IngredientName = ing.Name
			item.Unit = ing.Unit
			item.ReorderPoint = ing.ReorderPoint
		}
		items = append(items, item)
	}
	return &dto.StockListResponse{
		BranchID: branchID,
		Items:    items,
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListMovements lista el libro de movimientos del negocio con filtros.
func (uc *UseCase) ListMovements(businessID string, filter repository.StockMovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movRepo.ListByBusiness(businessID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// findOwnedBranch obtiene la sucursal verificando pertenencia al negocio.
func (uc *UseCase) findOwnedBranch(businessID, branchID string) (*entity.Branch, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return branch, nil
}

// findOwnedIngredient obtiene el ingrediente verificando pertenencia.
func (uc *UseCase) findOwnedIngredient(businessID, ingredientID string) (*entity.Ingredient, error) {
	ingredient, err := uc.ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil || ingredient.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return ingredient, nil
}

func toBatchResponse(b *entity.WarehouseBatch) *dto.WarehouseBatchResponse {
	if b == nil {
		return nil
	}
	return &dto.WarehouseBatchResponse{
		ID:           b.ID,
		BranchID:     b.BranchID,
		IngredientID: b.IngredientID,
		Quantity:     b.Quantity,
		TotalCost:    b.TotalCost,
		UnitCost:     b.UnitCost,
		ReceivedAt:   b.ReceivedAt,
		ExpiresAt:    b.ExpiresAt,
		Note:         b.Note,
		CreatedAt:    b.CreatedAt,
	}
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		BranchID:      m.BranchID,
		IngredientID:  m.IngredientID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		TotalCost:     m.TotalCost,
		Reason:        m.Reason,
		Date:          m.Date,
		CreatedBy:     m.CreatedBy,
	}
}
