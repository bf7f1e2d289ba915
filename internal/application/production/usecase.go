// Package production contiene el ciclo de lotes de producción: planificar
// (reservar stock), confirmar (consumir y asentar salidas) y cancelar
// (liberar la reserva).
package production

import (
	"github.com/jhoicas/Baristo-api/internal/application/dto"
	"github.com/jhoicas/Baristo-api/internal/domain"
	"github.com/jhoicas/Baristo-api/internal/domain/entity"
	"github.com/jhoicas/Baristo-api/internal/domain/repository"
)

// UseCase casos de uso de producción. Las transiciones de estado corren
// dentro de transacciones vía TxRunner con bloqueo de filas.
type UseCase struct {
	txRunner       TxRunner
	branchRepo     repository.BranchRepository
	productRepo    repository.ProductRepository
	ingredientRepo repository.IngredientRepository
	prodRepo       repository.ProductionBatchRepository
	journey        JourneyMarker
}

// NewUseCase construye el caso de uso de producción.
func NewUseCase(
	txRunner TxRunner,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	prodRepo repository.ProductionBatchRepository,
	journey JourneyMarker,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		branchRepo:     branchRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		prodRepo:       prodRepo,
		journey:        journey,
	}
}

// GetByID obtiene un lote del negocio con sus líneas congeladas y los nombres
// de producto e ingredientes.
func (uc *UseCase) GetByID(businessID, id string) (*dto.ProductionBatchResponse, error) {
	batch, err := uc.findOwned(businessID, id)
	if err != nil {
		return nil, err
	}
	lines, err := uc.prodRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	resp := toBatchResponse(batch)
	resp.Lines, err = uc.toLineResponses(lines)
	if err != nil {
		return nil, err
	}
	if product, err := uc.productRepo.GetByID(batch.ProductID); err == nil && product != nil {
		resp.ProductName = product.Name
	}
	return resp, nil
}

// List lista los lotes del negocio con filtros de sucursal, estado y fecha.
func (uc *UseCase) List(businessID string, filter repository.ProductionBatchFilter, limit, offset int) (*dto.ProductionBatchListResponse, error) {
	list, err := uc.prodRepo.ListByBusiness(businessID, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionBatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.ProductionBatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UseCase) findOwned(businessID, id string) (*entity.ProductionBatch, error) {
	batch, err := uc.prodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.BusinessID != businessID {
		return nil, domain.ErrNotFound
	}
	return batch, nil
}

// toLineResponses mapea las líneas congeladas con nombre y unidad del
// ingrediente.
func (uc *UseCase) toLineResponses(lines []*entity.ProductionBatchLine) ([]dto.ProductionLineResponse, error) {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.IngredientID)
	}
	ingredients, err := uc.ingredientRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	items := make([]dto.ProductionLineResponse, 0, len(lines))
	for _, l := range lines {
		item := dto.ProductionLineResponse{
			IngredientID: l.IngredientID,
			Quantity:     l.Quantity,
			UnitCost:     l.UnitCost,
			LineTotal:    l.LineTotal(),
		}
		if ing := byID[l.IngredientID]; ing != nil {
			item.IngredientName = ing.Name
			item.Unit = ing.Unit
		}
		items = append(items, item)
	}
	return items, nil
}

func toBatchResponse(b *entity.ProductionBatch) *dto.ProductionBatchResponse {
	if b == nil {
		return nil
	}
	return &dto.ProductionBatchResponse{
		ID:          b.ID,
		BranchID:    b.BranchID,
		ProductID:   b.ProductID,
		Quantity:    b.Quantity,
		Status:      b.Status,
		TotalCost:   b.TotalCost,
		CostPerCup:  b.CostPerCup(),
		Note:        b.Note,
		CreatedAt:   b.CreatedAt,
		CommittedAt: b.CommittedAt,
	}
}
